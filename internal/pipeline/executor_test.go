package pipeline

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/hackforge/hackathon-service/pkg/util/errorutil"
)

type testCtx struct {
	visited []string
}

func visit(name string, err error) Stage[testCtx] {
	return Stage[testCtx]{
		Name: name,
		Run: func(_ context.Context, c *testCtx) error {
			c.visited = append(c.visited, name)
			return err
		},
	}
}

func TestExecutor_Run_AllStages(t *testing.T) {
	e := NewExecutor[testCtx]("test")
	c := &testCtx{}

	require.NoError(t, e.Run(context.Background(), c, visit("a", nil), visit("b", nil), visit("c", nil)))
	assert.Equal(t, []string{"a", "b", "c"}, c.visited)
}

func TestExecutor_Run_Empty(t *testing.T) {
	e := NewExecutor[testCtx]("test")
	assert.NoError(t, e.Run(context.Background(), &testCtx{}))
}

func TestExecutor_Run_StopsAtFirstError(t *testing.T) {
	denied := apperrors.NewForbidden("nope")
	var hookStage string
	var hookErr error
	e := NewExecutor[testCtx]("test", WithFailureHook[testCtx](func(_ context.Context, _ *testCtx, stage string, err error) {
		hookStage, hookErr = stage, err
	}))
	c := &testCtx{}

	err := e.Run(context.Background(), c, visit("a", nil), visit("b", denied), visit("c", nil))

	assert.Same(t, denied, err)
	assert.Equal(t, []string{"a", "b"}, c.visited)
	assert.Equal(t, "b", hookStage)
	assert.Same(t, denied, hookErr)
}

func TestExecutor_Run_RecoversPanic(t *testing.T) {
	e := NewExecutor[testCtx]("test")
	c := &testCtx{}
	boom := Stage[testCtx]{Name: "boom", Run: func(context.Context, *testCtx) error { panic("kaboom") }}

	err := e.Run(context.Background(), c, boom, visit("after", nil))

	require.Error(t, err)
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Contains(t, de.Err.Error(), "kaboom")
	assert.Empty(t, c.visited)
}

func TestExecutor_Run_SpanPerStage(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	e := NewExecutor[testCtx]("hacker.update", WithTracer[testCtx](tp.Tracer("test")))

	err := e.Run(context.Background(), &testCtx{}, visit("guard", nil), visit("write", errors.New("boom")), visit("email", nil))
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "hacker.update.guard", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, "hacker.update.write", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "boom", spans[1].Status().Description)
}

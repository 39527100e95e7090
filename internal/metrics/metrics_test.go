package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora/internal/testutils"
	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

func TestObserveDispatch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveDispatch("home", command.OutcomeExecuted, time.Millisecond)
	m.ObserveDispatch("home", command.OutcomeExecuted, time.Millisecond)
	m.ObserveDispatch("home", command.OutcomeOnCooldown, time.Millisecond)
	m.ObserveDispatch("", command.OutcomeUnknownCommand, time.Millisecond)

	expected := `
		# HELP aurora_dispatches_total Total number of command dispatches by root command and outcome
		# TYPE aurora_dispatches_total counter
		aurora_dispatches_total{outcome="executed",root="home"} 2
		aurora_dispatches_total{outcome="on_cooldown",root="home"} 1
		aurora_dispatches_total{outcome="unknown_command",root="unknown"} 1
	`
	if err := testutil.CollectAndCompare(m.DispatchCounter, strings.NewReader(expected)); err != nil {
		t.Errorf("Unexpected metric value: %v", err)
	}
	assert.Equal(t, 2, testutil.CollectAndCount(m.DispatchDuration))
}

func TestObservePrune(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObservePrune(3)
	m.ObservePrune(0)
	m.ObservePrune(2)
	assert.Equal(t, 5.0, testutil.ToFloat64(m.CooldownsPruned))
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) }, "collectors must not register twice on one registry")
}

func TestDispatcherIntegration(t *testing.T) {
	m := New(prometheus.NewRegistry())
	d := command.NewDispatcher(command.WithObserver(m))
	d.MustRegister(
		command.New("ping").WithHandler(func(auroratypes.Caller, *command.Context) error { return nil }),
		command.New("fail").WithHandler(func(auroratypes.Caller, *command.Context) error { return errors.New("boom") }),
	)

	caller := testutils.NewMockCaller("steve")
	_, err := d.Dispatch(caller, "ping", nil)
	require.NoError(t, err)
	_, err = d.Dispatch(caller, "fail", nil)
	require.Error(t, err)
	handled, _ := d.Dispatch(caller, "nope", nil)
	require.False(t, handled)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DispatchCounter.WithLabelValues("ping", "executed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DispatchCounter.WithLabelValues("fail", "handler_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DispatchCounter.WithLabelValues(UnknownRoot, "unknown_command")))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveDispatch("list", command.OutcomeExecuted, time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `aurora_dispatches_total{outcome="executed",root="list"} 1`)
	assert.Contains(t, string(body), "aurora_dispatch_duration_seconds_bucket")
}

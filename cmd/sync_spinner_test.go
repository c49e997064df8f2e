package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncModelCountsSteps(t *testing.T) {
	noop := func(context.Context) error { return nil }
	model := syncModel{
		ctx:     context.Background(),
		spinner: spinner.New(),
		steps:   []syncStep{{label: "Syncing items...", run: noop}, {label: "Syncing session s-1...", run: noop}},
	}
	assert.Contains(t, model.View(), "Syncing items... (1/2)")

	next, cmd := model.Update(stepDoneMsg{index: 0})
	require.NotNil(t, cmd)
	assert.Contains(t, next.View(), "Syncing session s-1... (2/2)")

	next, _ = next.Update(stepDoneMsg{index: 1})
	assert.Empty(t, next.View())
	assert.NoError(t, next.(syncModel).err)
}

func TestRunSyncSpinnerStopsAtFirstError(t *testing.T) {
	boom := errors.New("status 502")
	var ran []string
	step := func(name string, err error) syncStep {
		return syncStep{label: name, run: func(context.Context) error {
			ran = append(ran, name)
			return err
		}}
	}

	err := runSyncSpinner(context.Background(), &bytes.Buffer{}, step("items", nil), step("session", boom), step("never", nil))

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"items", "session"}, ran)
}

func TestRunSyncSpinnerWithoutStepsIsNoop(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, runSyncSpinner(context.Background(), out))
	assert.Empty(t, out.String())
}

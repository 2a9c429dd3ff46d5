package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{label: "Recolor: 3/10", want: "Recolor"},
		{label: "Remove small regions: 12/40", want: "Remove small regions"},
		{label: "Waiting in queue", want: "Waiting in queue"},
		{label: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			require.Equal(t, tt.want, stepName(tt.label))
		})
	}
}

func TestStepName_CounterDoesNotChangeStep(t *testing.T) {
	labels := []string{"Recolor: 1/3", "Recolor: 2/3", "Recolor: 3/3", "Outline: 1/2", "Outline: 2/2"}

	var logged []string
	var last string
	for _, label := range labels {
		if step := stepName(label); step != last {
			last = step
			logged = append(logged, label)
		}
	}
	require.Equal(t, []string{"Recolor: 1/3", "Outline: 1/2"}, logged)
}

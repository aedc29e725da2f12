// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"errors"
	"reflect"
	"testing"
)

func TestPipelineRun(t *testing.T) {
	var calls []string
	stage := func(name string, fn func(*RowContext) error) Stage {
		return func(ctx *RowContext) error {
			calls = append(calls, name)
			if fn != nil {
				return fn(ctx)
			}
			return nil
		}
	}
	boom := errors.New("boom")

	tests := []struct {
		name      string
		pipeline  Pipeline
		wantCalls []string
		wantErr   error
	}{
		{
			name:      "all stages",
			pipeline:  Pipeline{stage("a", nil), stage("b", nil), stage("c", nil)},
			wantCalls: []string{"a", "b", "c"},
		},
		{
			name: "error ends the row",
			pipeline: Pipeline{
				stage("a", func(*RowContext) error { return boom }),
				stage("b", nil),
			},
			wantCalls: []string{"a"},
			wantErr:   boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = nil
			err := tt.pipeline.Run(&RowContext{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", calls, tt.wantCalls)
			}
		})
	}
}

func TestEngineStages(t *testing.T) {
	f := newFixture()

	plain := f.engine(t, Options{})
	replace := f.engine(t, Options{Replace: true})

	if len(replace.pipeline) != len(plain.pipeline)+1 {
		t.Errorf("replace mode should add the clear stage: %d vs %d stages", len(replace.pipeline), len(plain.pipeline))
	}
}

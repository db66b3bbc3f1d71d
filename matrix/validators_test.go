// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the distance-table validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/tspsearch/matrix"
	"github.com/stretchr/testify/require"
)

// mustDense builds a Dense from rows or fails the test.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	tests := []struct {
		name string
		m    matrix.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"1x1", mustDense(t, [][]float64{{0}}), nil},
		{"3x3", mustDense(t, [][]float64{{0, 1, 2}, {1, 0, 3}, {2, 3, 0}}), nil},
		{"2x3", rect, matrix.ErrNonSquare},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSquare(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.Truef(t, errors.Is(err, tc.want), "expected errors.Is(%v, %v)", err, tc.want)
		})
	}
}

// TestValidateDistances walks through every policy violation in priority order.
func TestValidateDistances(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]float64
		want error
	}{
		{"ok asymmetric", [][]float64{{0, 1, 2}, {5, 0, 3}, {2, 7, 0}}, nil},
		{"negative", [][]float64{{0, -1}, {1, 0}}, matrix.ErrNegative},
		{"nan", [][]float64{{0, math.NaN()}, {1, 0}}, matrix.ErrNaNInf},
		{"inf", [][]float64{{0, 1}, {math.Inf(1), 0}}, matrix.ErrNaNInf},
		{"diagonal", [][]float64{{0, 1}, {1, 0.5}}, matrix.ErrNonZeroDiagonal},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateDistances(mustDense(t, tc.rows), 1e-12)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateSymmetric(t *testing.T) {
	t.Parallel()

	sym := mustDense(t, [][]float64{{0, 1, 2}, {1, 0, 3}, {2, 3, 0}})
	require.NoError(t, matrix.ValidateSymmetric(sym, 0))
	require.True(t, matrix.IsSymmetric(sym, 0))

	asym := mustDense(t, [][]float64{{0, 1}, {1.5, 0}})
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, 1e-9), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(asym, -1), "negative tol is taken as |tol|")
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, math.NaN()), matrix.ErrNaNInf)
}

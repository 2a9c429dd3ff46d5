//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoCVPreprocessor_Disabled(t *testing.T) {
	p, err := NewGoCVPreprocessor(0)
	require.ErrorIs(t, err, errNoGoCV)
	require.Nil(t, p)

	var stub GoCVPreprocessor
	_, err = stub.ResizeKeepingAspect(context.Background(), nil, image.Pt(1, 1))
	require.ErrorIs(t, err, errNoGoCV)
}

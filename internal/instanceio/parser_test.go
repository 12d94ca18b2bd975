package instanceio_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/r3b0rn/pfspwt/internal/instanceio"
)

const validInstance = `3 2
1 5 2 7
1 3 2 4
1 6 2 2
Reldue
1 10 1 1.5
1 8 1 2.0
1 20 1 1.0
`

func TestParse_Valid(t *testing.T) {
	inst, err := instanceio.Parse(strings.NewReader(validInstance))
	require.NoError(t, err)
	require.Equal(t, 3, inst.Jobs)
	require.Equal(t, 2, inst.Machines)
	require.Equal(t, 5, inst.Time(0, 0))
	require.Equal(t, 7, inst.Time(0, 1))
	require.Equal(t, 10, inst.DueDate(0))
	require.InDelta(t, 1.5, inst.Weight(0), 1e-9)
}

func TestParse_SkipsBlankLines(t *testing.T) {
	spaced := "3 2\n\n1 5 2 7\n1 3 2 4\n\n1 6 2 2\nReldue\n1 10 1 1.5\n1 8 1 2.0\n1 20 1 1.0\n"
	inst, err := instanceio.Parse(strings.NewReader(spaced))
	require.NoError(t, err)
	require.Equal(t, 3, inst.Jobs)
}

func TestParse_MissingReldue(t *testing.T) {
	noMarker := "3 2\n1 5 2 7\n1 3 2 4\n1 6 2 2\n1 10 1 1.5\n1 8 1 2.0\n1 20 1 1.0\n"
	_, err := instanceio.Parse(strings.NewReader(noMarker))
	require.Error(t, err)
	var perr *instanceio.ParseError
	require.True(t, errors.As(err, &perr))
	require.True(t, errors.Is(err, instanceio.ErrMissingReldue))
}

func TestParse_BadHeader(t *testing.T) {
	_, err := instanceio.Parse(strings.NewReader("not a header\n"))
	require.Error(t, err)
	require.True(t, errors.Is(err, instanceio.ErrMissingHeader))
}

func TestParse_TruncatedFile(t *testing.T) {
	truncated := "3 2\n1 5 2 7\n"
	_, err := instanceio.Parse(strings.NewReader(truncated))
	require.Error(t, err)
	require.True(t, errors.Is(err, instanceio.ErrUnexpectedEOF))
}

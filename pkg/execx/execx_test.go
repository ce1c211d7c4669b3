// pkg/execx/execx_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: sh, sleep (POSIX)
// PURPOSE: Verify failures collapse into unavailable results

package execx_test

import (
	"context"
	"testing"
	"time"

	"github.com/polka-dots/polka/pkg/execx"
	"github.com/stretchr/testify/assert"
)

func TestExec_Success(t *testing.T) {
	r := execx.New(time.Second)

	res := r.Run(context.Background(), execx.Command{Name: "sh", Args: []string{"-c", "echo hello"}})
	assert.True(t, res.Available())
	assert.Equal(t, "hello\n", res.Stdout)
}

func TestExec_Stdin(t *testing.T) {
	r := execx.New(time.Second)

	res := r.Run(context.Background(), execx.Command{Name: "cat", Stdin: "WiFi\nVPN"})
	assert.True(t, res.Available())
	assert.Equal(t, "WiFi\nVPN", res.Stdout)
}

func TestExec_Failures(t *testing.T) {
	r := execx.New(time.Second)
	ctx := context.Background()

	t.Run("non-zero exit", func(t *testing.T) {
		res := r.Run(ctx, execx.Command{Name: "sh", Args: []string{"-c", "exit 3"}})
		assert.False(t, res.Available())
		assert.Equal(t, 3, res.ExitCode)
		assert.NoError(t, res.Err)
	})

	t.Run("missing executable", func(t *testing.T) {
		res := r.Run(ctx, execx.Command{Name: "polka-definitely-not-installed"})
		assert.False(t, res.Available())
		assert.Error(t, res.Err)
	})

	t.Run("timeout", func(t *testing.T) {
		res := r.Run(ctx, execx.Command{Name: "sleep", Args: []string{"5"}, Timeout: 50 * time.Millisecond})
		assert.False(t, res.Available())
		assert.True(t, res.TimedOut())
	})
}

func TestQuery(t *testing.T) {
	fake := execx.NewFake().
		On("playerctl -l", "spotify\nfirefox\n").
		OnFail("pactl get-sink-volume @DEFAULT_SINK@", 1)

	out, ok := execx.Query(context.Background(), fake, 0, "playerctl", "-l")
	assert.True(t, ok)
	assert.Equal(t, "spotify\nfirefox", out)

	out, ok = execx.Query(context.Background(), fake, 0, "pactl", "get-sink-volume", "@DEFAULT_SINK@")
	assert.False(t, ok)
	assert.Empty(t, out)

	_, ok = execx.Query(context.Background(), fake, 0, "unknown")
	assert.False(t, ok)
}

func TestFake_QueueRepeatsLast(t *testing.T) {
	fake := execx.NewFake().On("x", "1").On("x", "2")
	ctx := context.Background()

	assert.Equal(t, "1", fake.Run(ctx, execx.Command{Name: "x"}).Stdout)
	assert.Equal(t, "2", fake.Run(ctx, execx.Command{Name: "x"}).Stdout)
	assert.Equal(t, "2", fake.Run(ctx, execx.Command{Name: "x"}).Stdout)
	assert.True(t, fake.Called("x"))
	assert.False(t, fake.Called("y"))
}

package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestWithRunIDGeneratesWhenEmpty(t *testing.T) {
	ctx := WithRunID(context.Background(), "")
	id := RunID(ctx)
	require.NotEmpty(t, id)
	assert.Len(t, id, 36)

	ctx = WithRunID(context.Background(), "fixed")
	assert.Equal(t, "fixed", RunID(ctx))
	assert.Equal(t, "", RunID(context.Background()))
}

func TestTimeLogsOperationAndError(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRunID(context.Background(), "r1")

	func() (err error) {
		defer Time(ctx, "op.ok")(&err)
		return nil
	}()
	func() (err error) {
		defer Time(ctx, "op.fail")(&err)
		return errors.New("boom")
	}()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "run_id=r1 op=op.ok dur=")
	assert.NotContains(t, lines[0], "err=")
	assert.Contains(t, lines[1], "op=op.fail")
	assert.Contains(t, lines[1], "err=boom")
}

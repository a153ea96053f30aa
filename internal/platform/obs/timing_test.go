package obs

import (
	"context"
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogsRequestIDAndError(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	log.SetLevel(log.DebugLevel)

	ctx := WithRequestID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", RequestID(ctx))

	func() (err error) {
		defer Time(ctx, "unit.op")(&err)
		return errors.New("boom")
	}()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.WarnLevel, entry.Level)
	assert.Equal(t, "abc-123", entry.Data["req_id"])
	assert.Equal(t, "unit.op", entry.Data["op"])
	assert.EqualError(t, entry.Data[log.ErrorKey].(error), "boom")

	func() (err error) {
		defer Time(ctx, "unit.ok")(&err)
		return nil
	}()
	assert.Equal(t, log.DebugLevel, hook.LastEntry().Level)
}

func TestRequestIDMissing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}

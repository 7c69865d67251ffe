package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
)

type fakeSender struct {
	to   tele.Recipient
	what interface{}
	opts []interface{}
	err  error
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.to, f.what, f.opts = to, what, opts
	return &tele.Message{}, f.err
}

func testDriver() *models.Driver {
	return &models.Driver{
		ID:            7,
		Account:       models.Account{Username: "admin", FirstName: "Ann", LastName: "<Lee>"},
		LicenseNumber: "RRR12645",
	}
}

func TestTelegramNotifier_DriverCreated(t *testing.T) {
	fs := &fakeSender{}
	n := &telegramNotifier{bot: fs, adminID: 42, log: logger.NewNop()}

	require.NoError(t, n.DriverCreated(context.Background(), testDriver()))
	assert.Equal(t, "42", fs.to.Recipient())
	assert.Contains(t, fs.what, "#7")
	assert.Contains(t, fs.what, "Ann &lt;Lee&gt;")
	assert.Contains(t, fs.what, "RRR12645")
	assert.Equal(t, []interface{}{tele.ModeHTML}, fs.opts)
}

func TestTelegramNotifier_SendError(t *testing.T) {
	fs := &fakeSender{err: errors.New("boom")}
	n := &telegramNotifier{bot: fs, adminID: 42, log: logger.NewNop()}

	assert.Error(t, n.DriverCreated(context.Background(), testDriver()))
}

func TestTelegramNotifier_CancelledContext(t *testing.T) {
	fs := &fakeSender{}
	n := &telegramNotifier{bot: fs, adminID: 42, log: logger.NewNop()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.DriverCreated(ctx, testDriver()), context.Canceled)
	assert.Nil(t, fs.to)
}

func TestNewTelegram_Offline(t *testing.T) {
	b, err := tele.NewBot(tele.Settings{Token: "123:abc", Offline: true})
	require.NoError(t, err)
	assert.NotNil(t, NewTelegram(b, 42, logger.NewNop()))
}

func TestNop(t *testing.T) {
	assert.NoError(t, NewNop().DriverCreated(context.Background(), testDriver()))
}

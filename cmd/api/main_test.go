package main

import (
	"testing"

	"portfolio-backend/config"

	"github.com/stretchr/testify/assert"
)

func TestNewRelaySelectsProvider(t *testing.T) {
	tg := newRelay(&config.Config{RelayProvider: config.RelayTelegram, TelegramBotToken: "t", TelegramChatID: "c"})
	assert.Equal(t, "telegram", tg.Name())
	assert.True(t, tg.IsConfigured())

	mail := newRelay(&config.Config{RelayProvider: config.RelayEmail})
	assert.Equal(t, "email", mail.Name())
	assert.False(t, mail.IsConfigured())
}

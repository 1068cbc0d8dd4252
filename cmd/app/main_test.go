package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSenhaAdmin(t *testing.T) {
	t.Run("padrao avisa", func(t *testing.T) {
		t.Setenv("A11Y_ADMIN_PASSWORD", "")
		core, logs := observer.New(zapcore.WarnLevel)

		assert.Equal(t, senhaAdminPadrao, senhaAdmin(zap.New(core).Sugar()))
		entries := logs.All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
			assert.Contains(t, entries[0].Message, "A11Y_ADMIN_PASSWORD")
		}
	})
	t.Run("definida no ambiente", func(t *testing.T) {
		t.Setenv("A11Y_ADMIN_PASSWORD", "s3nh@-forte")
		core, logs := observer.New(zapcore.WarnLevel)

		assert.Equal(t, "s3nh@-forte", senhaAdmin(zap.New(core).Sugar()))
		assert.Zero(t, logs.Len())
	})
}

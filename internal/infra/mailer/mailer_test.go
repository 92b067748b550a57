package mailer

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestSendPaymentReceipt(t *testing.T) {
	var (
		gotFrom string
		gotTo   []string
		raw     bytes.Buffer
	)
	sender := gomail.SendFunc(func(from string, to []string, msg io.WriterTo) error {
		gotFrom, gotTo = from, to
		_, err := msg.WriteTo(&raw)
		return err
	})

	m := NewWithSender("hub@pridenomad.com", sender)
	err := m.SendPaymentReceipt(context.Background(), "owner@example.com", Receipt{
		PlanName:     "Premium",
		Amount:       149,
		BusinessName: "Rainbow Cafe",
		Role:         "Premium User",
	})
	require.NoError(t, err)

	assert.Equal(t, "hub@pridenomad.com", gotFrom)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
	body := raw.String()
	assert.Contains(t, body, "Premium")
	assert.Contains(t, body, "149.00")
	assert.Contains(t, body, "Rainbow Cafe")
}

func TestNew_WithoutHostIsNoop(t *testing.T) {
	m := New(Config{From: "hub@pridenomad.com"})
	assert.NoError(t, m.Send("a@x.com", "hi", "<p>hi</p>"))
}

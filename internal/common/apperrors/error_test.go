package apperrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	ErrBase := New("base error")
	assert.Equal(t, "base error", ErrBase.Error())
	assert.Equal(t, "msg", ErrBase.New("msg").Error())
	assert.ErrorIs(t, ErrBase, ErrBase)

	ErrChild := ErrBase.New("child")
	assert.Equal(t, "child", ErrChild.Error())
	assert.ErrorIs(t, ErrChild, ErrBase)

	ErrOther := New("other error")
	wrapped := ErrChild.Err(ErrOther)
	assert.Equal(t, "child", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrBase)
	assert.ErrorIs(t, wrapped, ErrOther)

	err := errors.New("plain")
	wrapped = ErrChild.MsgErr("msg", err)
	assert.Equal(t, "msg", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrBase)
	assert.ErrorIs(t, wrapped, err)
	assert.Equal(t, "msg: plain", wrapped.ErrorAll())
}

func TestSentinelImmutability(t *testing.T) {
	ErrBase := New("base error")
	_ = ErrBase.Msg("annotated")
	assert.Equal(t, "base error", ErrBase.Error())
}

// Package xgxzap encodes failure chains as structured zap fields.
//
// The core package never logs; this adapter lets a program that does log
// record a chain without flattening it into one string:
//
//	logger.Error("reload failed", xgxzap.Field("error", err))
//
// produces an object with the full Error() text, one entry per rendered
// level, the first code (under "code" when built in, "custom_code"
// otherwise) and variant tag found, and the backtrace frames when
// a link owns one.
package xgxzap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	xgxfault "github.com/xgx-io/xgx-fault"
)

// Field returns a zap field for err under key. A nil err is skipped.
func Field(key string, err error) zap.Field {
	if err == nil {
		return zap.Skip()
	}
	return zap.Object(key, Chain(err))
}

// Chain returns a marshaler for err's chain.
func Chain(err error) zapcore.ObjectMarshaler {
	return chainMarshaler{err: err}
}

type chainMarshaler struct {
	err error
}

func (m chainMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if m.err == nil {
		return nil
	}
	enc.AddString("message", m.err.Error())

	chain := xgxfault.ChainOf(m.err)
	if err := enc.AddArray("chain", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for line := range chain.Lines() {
			ae.AppendString(line)
		}
		return nil
	})); err != nil {
		return err
	}

	// Project-defined codes go under their own key so "code" stays within
	// the core vocabulary.
	switch code := xgxfault.CodeOf(m.err); {
	case code.IsBuiltin():
		enc.AddString("code", string(code))
	case code != "":
		enc.AddString("custom_code", string(code))
	}
	for link := range chain.All() {
		if t, ok := link.(xgxfault.Tagged); ok {
			enc.AddString("variant", t.Tag())
			break
		}
	}

	stk := chain.Backtrace()
	if len(stk) == 0 {
		return nil
	}
	return enc.AddArray("backtrace", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, fr := range stk {
			ae.AppendString(fr.String())
		}
		return nil
	}))
}

package keyvaluedb

import (
	"errors"
	"reflect"
)

var (
	ErrInvalidKey = errors.New("invalid key")
	ErrValueIsNil = errors.New("value is nil")
)

// CheckKey rejects empty keys, bolt can't store them.
func CheckKey(key []byte) error {
	if len(key) == 0 {
		return ErrInvalidKey
	}
	return nil
}

// CheckValue rejects untyped nil and nil pointers.
func CheckValue(val any) error {
	switch v := reflect.ValueOf(val); {
	case !v.IsValid():
		return ErrValueIsNil
	case v.Kind() == reflect.Pointer && v.IsNil():
		return ErrValueIsNil
	}
	return nil
}

// CheckKeyAndValue is the validation done by every Write.
func CheckKeyAndValue(key []byte, val any) error {
	return errors.Join(CheckKey(key), CheckValue(val))
}

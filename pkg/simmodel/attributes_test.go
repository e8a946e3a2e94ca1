package simmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		kind AttrKind
	}{
		{"int", AttrInt(42), AttrKindInt},
		{"float", AttrFloat(3.14), AttrKindFloat},
		{"string", AttrString("cargo"), AttrKindString},
		{"bool", AttrBool(true), AttrKindBool},
		{"bytes", AttrBytes([]byte{1, 2, 3}), AttrKindBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.attr.Kind())
		})
	}
}

func TestAttrWrongAccessorReturnsFalse(t *testing.T) {
	a := AttrInt(7)

	_, ok := a.String()
	assert.False(t, ok)

	v, ok := a.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestAttributesCloneIsIndependent(t *testing.T) {
	original := Attributes{"weight": AttrFloat(10)}
	clone := original.Clone()

	clone["weight"] = AttrFloat(99)

	orig, _ := original["weight"].Float()
	cloned, _ := clone["weight"].Float()
	assert.Equal(t, 10.0, orig)
	assert.Equal(t, 99.0, cloned)
}

func TestAttributesCloneNil(t *testing.T) {
	var a Attributes
	assert.Nil(t, a.Clone())
}

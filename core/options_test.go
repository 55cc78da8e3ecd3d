package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOptionsDefaults(t *testing.T) {
	o := NewOptions()
	require.Equal(t, AlignmentBitPacked, o.Alignment)
	require.Equal(t, DefaultBlockSize, o.BlockSize)
	require.Equal(t, Unbounded, o.ValueMaxLength)
	require.Equal(t, Unbounded, o.ValuePartitionCapacity)
	require.Nil(t, o.Validate())
}

func TestSetStrictClearsIncompatibleFlags(t *testing.T) {
	o := NewOptions()
	require.Nil(t, o.SetPreserve(PreserveLexicalValues, true))
	require.Nil(t, o.SetPreserve(PreserveComments, true))
	o.SetStrict(true)
	require.True(t, o.Preserve.Has(PreserveLexicalValues))
	require.False(t, o.Preserve.Has(PreserveComments))
}

func TestSetPreserveRejectedUnderStrict(t *testing.T) {
	o := NewOptions()
	o.SetStrict(true)
	err := o.SetPreserve(PreserveDTD, true)
	require.NotNil(t, err)
	require.Equal(t, KindInvalidConfig, err.Kind)
}

func TestValidateCompressionAllowsBitPacked(t *testing.T) {
	o := NewOptions()
	o.Compression = true
	require.Nil(t, o.Validate())
}

func TestValidateCompressionRejectsNonBitPackedAlignment(t *testing.T) {
	o := NewOptions()
	o.Compression = true
	o.Alignment = AlignmentPreCompression
	err := o.Validate()
	require.NotNil(t, err)
	require.Equal(t, RuleCompressionRequiresBitPacked, err.Extra)

	o2 := NewOptions()
	o2.Compression = true
	o2.Alignment = AlignmentByteAligned
	err2 := o2.Validate()
	require.NotNil(t, err2)
	require.Equal(t, RuleCompressionRequiresBitPacked, err2.Extra)
}

func TestValidateStrictExcludesPreserveFlags(t *testing.T) {
	o := NewOptions()
	o.Strict = true
	o.Preserve = PreserveDTD
	err := o.Validate()
	require.NotNil(t, err)
	require.Equal(t, RuleStrictExcludesCompression, err.Extra)
}

func TestValidateSelfContainedExcludesCompression(t *testing.T) {
	o := NewOptions()
	o.SelfContained = true
	o.Compression = true
	err := o.Validate()
	require.NotNil(t, err)
	require.Equal(t, RuleStrictExcludesSelfContained, err.Extra)
}

func TestValidateSelfContainedExcludesPreCompressionAlignment(t *testing.T) {
	o := NewOptions()
	o.SelfContained = true
	o.Alignment = AlignmentPreCompression
	err := o.Validate()
	require.NotNil(t, err)
	require.Equal(t, RuleStrictExcludesSelfContained, err.Extra)
}

func TestValidateFragmentExcludesSelfContained(t *testing.T) {
	o := NewOptions()
	o.Fragment = true
	o.SelfContained = true
	err := o.Validate()
	require.NotNil(t, err)
	require.Equal(t, RuleFragmentExcludesSelfContained, err.Extra)
}

func TestEqualSchemaID(t *testing.T) {
	a := NewOptions()
	b := NewOptions()
	require.True(t, a.EqualSchemaID(b))

	a.SetSchemaID("urn:example:schema")
	require.False(t, a.EqualSchemaID(b))

	b.SetSchemaID("urn:example:schema")
	require.True(t, a.EqualSchemaID(b))
}

func TestLookupDatatypeRepresentation(t *testing.T) {
	o := NewOptions()
	_, ok := o.LookupDatatypeRepresentation("xsd:integer")
	require.False(t, ok)

	o.DatatypeRepresentationMap = map[string]string{"xsd:integer": "xsd:string"}
	rep, ok := o.LookupDatatypeRepresentation("xsd:integer")
	require.True(t, ok)
	require.Equal(t, "xsd:string", rep)
}

package core

import "github.com/dkowalski/exicore/utils"

// Alignment selects the EXI body's stream alignment mode.
type Alignment uint8

const (
	AlignmentBitPacked Alignment = iota
	AlignmentByteAligned
	AlignmentPreCompression
)

// Preserve is a bitset of optional fidelity preservation flags (spec's
// `preserve.{comments,pis,dtd,prefixes,lexicalValues}`), grounded on the
// teacher's FidelityOptions.SetFidelity eager-validation pattern, but
// expressed as a plain bitset rather than FidelityOptions' boolean
// fields plus an ad hoc string set.
type Preserve uint8

const (
	PreserveComments Preserve = 1 << iota
	PreservePIs
	PreserveDTD
	PreservePrefixes
	PreserveLexicalValues
)

func (p Preserve) Has(flag Preserve) bool { return p&flag != 0 }

// DefaultBlockSize mirrors the teacher's core.DefaultBlockSize constant.
const DefaultBlockSize uint32 = 1000000

// Unbounded is the sentinel for ValueMaxLength/ValuePartitionCapacity
// meaning "no limit", mirroring the teacher's DefaultValueMaxLength=-1
// convention translated to an unsigned sentinel.
const Unbounded uint32 = 0xFFFFFFFF

// Options is the typed configuration record controlling header and body
// encoding, replacing the teacher's map[string]any EncodingOptions /
// DecodingOptions pair with a single plain struct per spec's component
// table.
type Options struct {
	Alignment                 Alignment
	Compression               bool
	Strict                    bool
	Fragment                  bool
	SelfContained             bool
	Preserve                  Preserve
	BlockSize                 uint32
	ValueMaxLength            uint32
	ValuePartitionCapacity    uint32
	SchemaID                  *string
	DatatypeRepresentationMap map[string]string

	IncludeCookie   bool
	IncludeOptions  bool
	IncludeSchemaID bool
}

// NewOptions returns the default Options: bit-packed, non-strict,
// non-fragment, unbounded value limits, no preservation flags.
func NewOptions() *Options {
	return &Options{
		Alignment:              AlignmentBitPacked,
		BlockSize:              DefaultBlockSize,
		ValueMaxLength:         Unbounded,
		ValuePartitionCapacity: Unbounded,
	}
}

// SetStrict sets strict mode, eagerly clearing the fidelity flags that
// are incompatible with it (comments/PIs/DTD/prefixes are dropped,
// lexical-value preservation is kept), mirroring
// FidelityOptions.SetFidelity's "strict wipes the others but keeps
// lexicalValue" interaction rule.
func (o *Options) SetStrict(strict bool) {
	o.Strict = strict
	if strict {
		o.Preserve &^= PreserveComments | PreservePIs | PreserveDTD | PreservePrefixes
	}
}

// SetPreserve enables or disables a single preservation flag, rejecting
// the combination inline (rather than deferring to Validate) when it
// conflicts with strict mode, mirroring SetFidelity's eager-reject shape.
func (o *Options) SetPreserve(flag Preserve, enabled bool) *ExiError {
	if o.Strict && enabled && flag != PreserveLexicalValues {
		return New(KindInvalidConfig).WithCategory("options")
	}
	if enabled {
		o.Preserve |= flag
	} else {
		o.Preserve &^= flag
	}
	return nil
}

// Header-options cross-field validation rule numbers (R1..R5), referenced
// by core.Mismatch and spec.md §4.F.3.
const (
	// R1: compression and any alignment other than bit-packed are
	// mutually exclusive — pre-compression alignment exists precisely
	// to let an external compressor work on a byte-aligned stream, so
	// combining it (or byte-alignment) with the Compression option
	// would mix two incompatible compression strategies.
	RuleCompressionRequiresBitPacked uint32 = 1
	// R2: strict mode excludes the Compression option and the
	// comments/PIs/DTD/prefixes preservation flags (lexical-value
	// preservation is the one exception, per SetStrict).
	RuleStrictExcludesCompression uint32 = 2
	// R3: selfContained excludes strict mode, compression, and
	// pre-compression alignment.
	RuleStrictExcludesSelfContained uint32 = 3
	RuleFragmentExcludesSelfContained uint32 = 4
	RuleSchemaIDRequiresNonStrict       uint32 = 5
)

// Validate checks the cross-field consistency rules a decoder must
// enforce once an options document (or out-of-band Options) is fully
// read, mirroring EXIHeaderDecoder.Parse's post-parse checks. This is
// the backstop for options that were written directly from wire bits
// (decodeOptionsDocument) rather than through the eager-reject setters
// above, so every rule the setters enforce inline must also be checked
// here.
func (o *Options) Validate() *ExiError {
	if o.Compression && o.Alignment != AlignmentBitPacked {
		return Mismatch(RuleCompressionRequiresBitPacked)
	}
	if o.Strict && (o.Compression || o.Preserve.Has(PreserveComments|PreservePIs|PreserveDTD|PreservePrefixes)) {
		return Mismatch(RuleStrictExcludesCompression)
	}
	if o.SelfContained && (o.Strict || o.Compression || o.Alignment == AlignmentPreCompression) {
		return Mismatch(RuleStrictExcludesSelfContained)
	}
	if o.Fragment && o.SelfContained {
		return Mismatch(RuleFragmentExcludesSelfContained)
	}
	if o.Strict && utils.AsValueOrDefault(o.SchemaID, "") != "" {
		return Mismatch(RuleSchemaIDRequiresNonStrict)
	}
	return nil
}

// SetSchemaID sets the schema ID, per the teacher's
// SchemaInformedGrammars.SetSchemaID convention of taking a *string
// (nil means "no schema ID") rather than a value+presence-bool pair.
func (o *Options) SetSchemaID(schemaID string) {
	o.SchemaID = utils.AsPtr(schemaID)
}

// EqualSchemaID reports whether two Options declare the same schema ID,
// grounded on the teacher's utils.Equals generic pointer-comparison
// helper.
func (o *Options) EqualSchemaID(other *Options) bool {
	return utils.Equals(o.SchemaID, other.SchemaID)
}

// LookupDatatypeRepresentation reports the alternate datatype
// representation registered for datatype, if any, mirroring the
// teacher's DatatypeRepresentationMap lookup (SetDatatypeRepresentationMap
// / GetDatatypeRepresentationMapTypes) collapsed from a parallel-QName-
// slice pair into a single map.
func (o *Options) LookupDatatypeRepresentation(datatype string) (string, bool) {
	if !utils.ContainsKey(o.DatatypeRepresentationMap, datatype) {
		return "", false
	}
	return o.DatatypeRepresentationMap[datatype], true
}

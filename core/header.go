package core

import "github.com/dkowalski/exicore/utils"

// EXI header wire-format constants, carried forward from the teacher's
// AbstractEXIHeader naming (EXIHeader_*) under shorter Go-idiomatic names.
const (
	headerCookie              = "$EXI"
	headerDistinguishingBits  = 0b10
	headerNumDistinguishBits  = 2
	headerNumVersionBits      = 4
	headerVersionContinue     = 15
	headerSupportedVersion    = 1
)

// Header subcodes for core.Header(), distinguishing which structural
// check of the leading bytes failed.
const (
	HeaderSubcodeBadCookie             uint32 = 1
	HeaderSubcodeBadDistinguishingBits uint32 = 2
	HeaderSubcodePreviewVersion        uint32 = 3
	HeaderSubcodeUnsupportedVersion    uint32 = 4
	// HeaderSubcodeOutOfBand is returned when the header's presence bit
	// is 0 (no options document follows) and the caller did not allow
	// out-of-band options (allowOutOfBand == false), meaning there is no
	// source — embedded or otherwise — for the Options a decoder needs.
	HeaderSubcodeOutOfBand uint32 = 5
)

// DecodeHeader parses the EXI stream header: an optional 4-byte `$EXI`
// cookie, the 2-bit distinguishing bits, a presence bit, a format
// version (a run of 4-bit nibbles in which `15` means "another nibble
// follows" and the first nibble below 15 ends the run), and — if the
// presence bit is set — an options document. It returns the decoded
// Options and the total EXI version number, to which every nibble read
// contributes its value plus one.
//
// The options document itself is encoded as a direct bit-packed record
// of booleans/LEB integers in field order (see encodeOptionsDocument /
// decodeOptionsDocument) rather than as a nested, schema-informed
// EXI-encoded sub-stream: the full options grammar the teacher hand-built
// in EXIHeaderDecoder.ReadEXIOptions is out of scope for this codec, so
// the header's bit-level framing is kept but its payload format is
// simplified to the same primitives (NBit, LEB, boolean) the rest of the
// codec already uses.
//
// allowOutOfBand declares whether the caller is prepared to supply an
// Options value through some channel other than this header (a fixed
// out-of-band agreement between encoder and decoder). If the header's
// presence bit is 0 — no options document follows — and allowOutOfBand
// is false, decoding fails with Header(HeaderSubcodeOutOfBand) rather
// than silently falling back to NewOptions' defaults.
func DecodeHeader(r *BitReader, allowOutOfBand bool) (*Options, int, *ExiError) {
	if hasCookie(r) {
		for i := 0; i < len(headerCookie); i++ {
			b, err := r.ReadByte()
			if err != nil {
				return nil, 0, err
			}
			if b != headerCookie[i] {
				return nil, 0, Header(HeaderSubcodeBadCookie)
			}
		}
	}

	bits, err := r.ReadBitsU64(headerNumDistinguishBits)
	if err != nil {
		return nil, 0, err
	}
	if bits != headerDistinguishingBits {
		return nil, 0, Header(HeaderSubcodeBadDistinguishingBits)
	}

	presenceBit, err := r.ReadBit()
	if err != nil {
		return nil, 0, err
	}

	previewBit, err := r.ReadBit()
	if err != nil {
		return nil, 0, err
	}
	if previewBit != 0 {
		return nil, 0, Header(HeaderSubcodePreviewVersion)
	}

	version := 0
	for {
		nibble, err := r.ReadBitsU64(headerNumVersionBits)
		if err != nil {
			return nil, 0, err
		}
		version += int(nibble) + 1
		if nibble != headerVersionContinue {
			break
		}
	}
	if version != headerSupportedVersion {
		return nil, 0, Header(HeaderSubcodeUnsupportedVersion)
	}

	opts := NewOptions()
	if presenceBit != 0 {
		opts.IncludeOptions = true
		if decErr := decodeOptionsDocument(r, opts); decErr != nil {
			return nil, 0, decErr
		}
	} else if !allowOutOfBand {
		return nil, 0, Header(HeaderSubcodeOutOfBand)
	}

	if opts.Alignment != AlignmentBitPacked {
		if err := r.AlignUp(); err != nil {
			return nil, 0, err
		}
	}

	if validateErr := opts.Validate(); validateErr != nil {
		return nil, 0, validateErr
	}

	return opts, version, nil
}

// hasCookie peeks at the next 4 bytes: a genuine cookie's 2nd byte
// never matches the 0b10 distinguishing-bits pattern at bit offset 0,
// so the presence of the literal ASCII "$EXI" bytes is what actually
// distinguishes it. We peek byte-for-byte rather than guessing from bit
// patterns, mirroring the original decoder's unconditional lookahead.
func hasCookie(r *BitReader) bool {
	if r.FarBit() < 32 {
		return false
	}
	save := r.positionBits
	defer func() { r.positionBits = save }()
	for i := 0; i < len(headerCookie); i++ {
		b, err := r.ReadByte()
		if err != nil || b != headerCookie[i] {
			return false
		}
	}
	return true
}

// EncodeHeader writes the EXI stream header for opts: the cookie (if
// requested), distinguishing bits, presence bit, version nibble(s), and
// — if opts.IncludeOptions — the bit-packed options document, followed
// by alignment padding when the body isn't bit-packed.
func EncodeHeader(w *BitWriter, opts *Options) *ExiError {
	if opts.IncludeCookie {
		if err := w.WriteByteSlice([]byte(headerCookie)); err != nil {
			return err
		}
	}

	if err := w.WriteBitsU64(headerDistinguishingBits, headerNumDistinguishBits); err != nil {
		return err
	}

	presence := uint8(0)
	if opts.IncludeOptions {
		presence = 1
	}
	if err := w.WriteBit(presence); err != nil {
		return err
	}
	if err := w.WriteBit(0); err != nil { // format version bit: never "preview"
		return err
	}

	remaining := headerSupportedVersion
	for remaining > headerVersionContinue {
		if err := w.WriteBitsU64(headerVersionContinue, headerNumVersionBits); err != nil {
			return err
		}
		remaining -= headerVersionContinue + 1
	}
	if err := w.WriteBitsU64(uint64(remaining-1), headerNumVersionBits); err != nil {
		return err
	}

	if opts.IncludeOptions {
		if err := encodeOptionsDocument(w, opts); err != nil {
			return err
		}
	}

	if opts.Alignment != AlignmentBitPacked {
		if err := w.AlignUp(); err != nil {
			return err
		}
	}

	return nil
}

// Options-document field order for the simplified bit-packed encoding.
// Each boolean is one bit; BlockSize is an unsigned LEB varint;
// ValueMaxLength/ValuePartitionCapacity are each a presence bit, 0 for
// Unbounded (nothing follows) or 1 followed by an unsigned LEB varint.
func encodeOptionsDocument(w *BitWriter, o *Options) *ExiError {
	if err := w.WriteBitsU64(uint64(o.Alignment), 2); err != nil {
		return err
	}
	if err := writeFlag(w, o.Compression); err != nil {
		return err
	}
	if err := writeFlag(w, o.Strict); err != nil {
		return err
	}
	if err := writeFlag(w, o.Fragment); err != nil {
		return err
	}
	if err := writeFlag(w, o.SelfContained); err != nil {
		return err
	}
	if err := w.WriteBitsU64(uint64(o.Preserve), 5); err != nil {
		return err
	}
	if err := w.WriteUintLEB(uint64(o.BlockSize)); err != nil {
		return err
	}
	if err := writeOptionalLEB(w, o.ValueMaxLength); err != nil {
		return err
	}
	if err := writeOptionalLEB(w, o.ValuePartitionCapacity); err != nil {
		return err
	}
	if o.SchemaID != nil {
		if err := w.WriteBit(1); err != nil {
			return err
		}
		idBytes := []byte(*o.SchemaID)
		if err := w.WriteUintLEB(uint64(len(idBytes))); err != nil {
			return err
		}
		if err := w.WriteByteSlice(idBytes); err != nil {
			return err
		}
	} else {
		if err := w.WriteBit(0); err != nil {
			return err
		}
	}
	return nil
}

func decodeOptionsDocument(r *BitReader, o *Options) *ExiError {
	alignment, err := r.ReadBitsU64(2)
	if err != nil {
		return err
	}
	o.Alignment = Alignment(alignment)

	if o.Compression, err = readFlag(r); err != nil {
		return err
	}
	if o.Strict, err = readFlag(r); err != nil {
		return err
	}
	if o.Fragment, err = readFlag(r); err != nil {
		return err
	}
	if o.SelfContained, err = readFlag(r); err != nil {
		return err
	}

	preserve, err := r.ReadBitsU64(5)
	if err != nil {
		return err
	}
	o.Preserve = Preserve(preserve)

	blockSize, err := r.ReadUintLEB()
	if err != nil {
		return err
	}
	o.BlockSize = uint32(blockSize)

	if o.ValueMaxLength, err = readOptionalLEB(r); err != nil {
		return err
	}
	if o.ValuePartitionCapacity, err = readOptionalLEB(r); err != nil {
		return err
	}

	hasSchemaID, err := r.ReadBit()
	if err != nil {
		return err
	}
	if hasSchemaID != 0 {
		length, err := r.ReadUintLEB()
		if err != nil {
			return err
		}
		idBytes, err := r.ReadByteSlice(int(length))
		if err != nil {
			return err
		}
		o.SchemaID = utils.AsPtr(string(idBytes))
	}

	return nil
}

func writeFlag(w *BitWriter, v bool) *ExiError {
	return w.WriteBit(uint8(utils.BoolToInt(v)))
}

func readFlag(r *BitReader) (bool, *ExiError) {
	b, err := r.ReadBit()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func writeOptionalLEB(w *BitWriter, v uint32) *ExiError {
	if v == Unbounded {
		return w.WriteBit(0)
	}
	if err := w.WriteBit(1); err != nil {
		return err
	}
	return w.WriteUintLEB(uint64(v))
}

func readOptionalLEB(r *BitReader) (uint32, *ExiError) {
	present, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if present == 0 {
		return Unbounded, nil
	}
	v, err := r.ReadUintLEB()
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

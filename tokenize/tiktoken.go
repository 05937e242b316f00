package tokenize

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/BaSui01/corpusflow/types"
)

// Known tiktoken encodings.
const (
	EncodingCL100K = "cl100k_base"
	EncodingO200K  = "o200k_base"
	EncodingP50K   = "p50k_base"
	EncodingR50K   = "r50k_base"
)

// TiktokenTokenizer wraps a tiktoken BPE encoding.
type TiktokenTokenizer struct {
	encoding string
	enc      *tiktoken.Tiktoken
	once     sync.Once
	initErr  error
}

// NewTiktokenTokenizer creates a tokenizer for the given encoding name.
// An empty name defaults to cl100k_base.
func NewTiktokenTokenizer(encoding string) *TiktokenTokenizer {
	if encoding == "" {
		encoding = EncodingCL100K
	}
	return &TiktokenTokenizer{encoding: encoding}
}

// init lazily initializes the tiktoken encoding (the first use may
// download the BPE data).
func (t *TiktokenTokenizer) init() error {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			t.initErr = types.NewErrorf(types.ErrTokenizerError,
				"init tiktoken encoding %s", t.encoding).WithCause(err)
			return
		}
		t.enc = enc
	})
	return t.initErr
}

func (t *TiktokenTokenizer) CountTokens(text string) (int, error) {
	if err := t.init(); err != nil {
		return 0, err
	}
	return len(t.enc.Encode(text, nil, nil)), nil
}

func (t *TiktokenTokenizer) Encode(text string) ([]int, error) {
	if err := t.init(); err != nil {
		return nil, err
	}
	return t.enc.Encode(text, nil, nil), nil
}

func (t *TiktokenTokenizer) Decode(tokens []int) (string, error) {
	if err := t.init(); err != nil {
		return "", err
	}
	return t.enc.Decode(tokens), nil
}

func (t *TiktokenTokenizer) Name() string {
	return fmt.Sprintf("tiktoken[%s]", t.encoding)
}

// RegisterTiktokenEncodings registers tokenizers for all known tiktoken
// encodings.
func RegisterTiktokenEncodings() {
	for _, encoding := range []string{EncodingCL100K, EncodingO200K, EncodingP50K, EncodingR50K} {
		Register(encoding, NewTiktokenTokenizer(encoding))
	}
}

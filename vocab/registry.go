package vocab

import (
	"sort"
	"sync"

	"github.com/BaSui01/corpusflow/types"
)

var vocabSHA1Mu sync.RWMutex

// vocabSHA1 maps hosted vocabulary names to the SHA-1 digest of the
// vocab file contents.
var vocabSHA1 = map[string]string{
	"wikitext-2":                                "be36dc5238c2e7d69720881647ab72eb506d0131",
	"gbw":                                       "ebb1a287ca14d8fa6f167c3a779e5e7ed63ac69f",
	"WMT2014_src":                               "230ebb817b1d86950d71e2e765f192a4e4f34415",
	"WMT2014_tgt":                               "230ebb817b1d86950d71e2e765f192a4e4f34415",
	"book_corpus_wiki_en_cased":                 "2d62af22535ed51f35cc8e2abb607723c89c2636",
	"book_corpus_wiki_en_uncased":               "a66073971aa0b1a262453fe51342e57166a8abcf",
	"openwebtext_book_corpus_wiki_en_uncased":   "a66073971aa0b1a262453fe51342e57166a8abcf",
	"openwebtext_ccnews_stories_books_cased":    "2b804f8f90f9f93c07994b703ce508725061cf43",
	"wiki_multilingual_cased":                   "0247cb442074237c38c62021f36b7a4dbd2e55f7",
	"wiki_cn_cased":                             "ddebd8f3867bca5a61023f73326fb125cf12b4f5",
	"wiki_multilingual_uncased":                 "2b2514cc539047b9179e9d98a4e68c36db05c97a",
	"scibert_scivocab_uncased":                  "2d2566bfc416790ab2646ab0ada36ba628628d60",
	"scibert_scivocab_cased":                    "2c714475b521ab8542cb65e46259f6bfeed8041b",
	"scibert_basevocab_uncased":                 "80ef760a6bdafec68c99b691c94ebbb918c90d02",
	"scibert_basevocab_cased":                   "a4ff6fe1f85ba95f3010742b9abc3a818976bb2c",
	"biobert_v1.0_pmc_cased":                    "a4ff6fe1f85ba95f3010742b9abc3a818976bb2c",
	"biobert_v1.0_pubmed_cased":                 "a4ff6fe1f85ba95f3010742b9abc3a818976bb2c",
	"biobert_v1.0_pubmed_pmc_cased":             "a4ff6fe1f85ba95f3010742b9abc3a818976bb2c",
	"biobert_v1.1_pubmed_cased":                 "a4ff6fe1f85ba95f3010742b9abc3a818976bb2c",
	"clinicalbert_uncased":                      "80ef760a6bdafec68c99b691c94ebbb918c90d02",
	"baidu_ernie_uncased":                       "223553643220255e2a0d4c60e946f4ad7c719080",
	"openai_webtext":                            "f917dc7887ce996068b0a248c8d89a7ec27b95a1",
}

// RegisterHosted registers an additional hosted vocabulary, for
// self-hosted repositories. sha1Hash is the lowercase hex SHA-1 digest
// of the vocab file contents.
func RegisterHosted(name, sha1Hash string) {
	vocabSHA1Mu.Lock()
	defer vocabSHA1Mu.Unlock()
	vocabSHA1[name] = sha1Hash
}

// HostedNames returns the sorted names of all hosted vocabularies.
func HostedNames() []string {
	vocabSHA1Mu.RLock()
	defer vocabSHA1Mu.RUnlock()
	names := make([]string, 0, len(vocabSHA1))
	for name := range vocabSHA1 {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SHA1 returns the full SHA-1 digest registered for the named
// vocabulary.
func SHA1(name string) (string, error) {
	vocabSHA1Mu.RLock()
	hash, ok := vocabSHA1[name]
	vocabSHA1Mu.RUnlock()
	if !ok {
		return "", types.NewErrorf(types.ErrVocabNotFound,
			"vocabulary for %s is not available, hosted vocabularies include: %v", name, HostedNames())
	}
	return hash, nil
}

// ShortHash returns the first 8 hex digits of the registered digest,
// used in hosted file names.
func ShortHash(name string) (string, error) {
	hash, err := SHA1(name)
	if err != nil {
		return "", err
	}
	return hash[:8], nil
}

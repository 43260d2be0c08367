// Package signature implements presigned query strings: a keyed BLAKE2b digest over
// the canonical form of a query, carried as one of its own parameters.
package signature

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/indigo-web/typedquery"
	"github.com/indigo-web/typedquery/datatype"
	"golang.org/x/crypto/blake2b"
)

// Param is the name of the parameter carrying the digest.
const Param = "sig"

// Sign returns a query with the digest of its canonical form attached. An already
// present digest is replaced in place. The key must be at most 64 bytes long.
func Sign(q *typedquery.Query, key []byte) (*typedquery.Query, error) {
	digest, err := digest(q, key)
	if err != nil {
		return nil, err
	}

	return typedquery.Set(q, Param, datatype.String(), &digest), nil
}

// Verify reports whether the digest attached to the query matches its canonical
// form. A query without a digest never verifies.
func Verify(q *typedquery.Query, key []byte) (bool, error) {
	attached := typedquery.Get(q, Param, datatype.String())
	if attached == nil {
		return false, nil
	}

	want, err := digest(q, key)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(*attached), []byte(want)) == 1, nil
}

// digest hashes the sorted, stringified query without the digest parameter itself,
// so the signature doesn't depend on the entry order the URL happens to use.
func digest(q *typedquery.Query, key []byte) (string, error) {
	hasher, err := blake2b.New256(key)
	if err != nil {
		return "", err
	}

	hasher.Write([]byte(q.Delete(Param).Sort().String()))

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

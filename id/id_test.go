package id

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSha1Sum(t *testing.T) {
	sum := Sum([]byte("hello"))

	parsed, err := ParseSha1Sum(sum.String())
	require.NoError(t, err)
	assert.Equal(t, sum, parsed)

	_, err = ParseSha1Sum("abcd")
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = ParseSha1Sum("zz" + sum.String()[2:])
	assert.Error(t, err)
}

func TestHashOfHash(t *testing.T) {
	hash := Sum([]byte("content"))
	hashOfHash := HashOfHash(hash)

	assert.NotEqual(t, hash, hashOfHash)
	assert.Equal(t, Sum(hash[:]), hashOfHash)
	assert.Equal(t, hashOfHash, HashOfHash(hash), "derivation must be deterministic")
}

func TestLocationID(t *testing.T) {
	a := NewLocationID()
	b := NewLocationID()

	assert.False(t, a.IsZero())
	assert.NotEqual(t, a, b)

	parsed, err := ParseLocationID(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	_, err = ParseLocationID(Sum(nil).String())
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestSha1SumJSON(t *testing.T) {
	sum := Sum([]byte("json"))

	data, err := json.Marshal(sum)
	require.NoError(t, err)
	assert.Equal(t, `"`+sum.String()+`"`, string(data))

	var decoded Sha1Sum
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sum, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &decoded))
}

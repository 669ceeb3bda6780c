// Package digest derives the hash encodings handed to the cracking tools.
//
// Fast unsalted digests (md5, sha256, ntlm) model leaked hash dumps; the
// salted crypt-style encodings model /etc/shadow entries. The two families
// are kept as separate code paths on purpose: they have very different
// security properties and the lab exercises lean on that difference.
package digest

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf16"

	"github.com/GehirnInc/crypt"
	_ "github.com/GehirnInc/crypt/sha512_crypt"
	"github.com/openwall/yescrypt-go"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/md4"
)

var ErrorUnsupportedAlgorithm = errors.New("hashing primitive is not available")

// Algorithm names a fast unsalted digest. The names double as the artifact
// file stems (md5 -> md5.txt).
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA256 Algorithm = "sha256"
	NTLM   Algorithm = "ntlm"
)

// FastAlgorithms lists the unsalted digests in the order their artifact
// files are generated.
var FastAlgorithms = []Algorithm{MD5, SHA256, NTLM}

// FastHex returns the lowercase hex digest of the entry's UTF-8 bytes. No
// salt, no iteration; identical input yields an identical digest on every
// platform.
func FastHex(algo Algorithm, entry string) (string, error) {
	switch algo {
	case MD5:
		sum := md5.Sum([]byte(entry))
		return hex.EncodeToString(sum[:]), nil
	case SHA256:
		sum := sha256.Sum256([]byte(entry))
		return hex.EncodeToString(sum[:]), nil
	case NTLM:
		// MD4 over the UTF-16LE encoding of the password.
		h := md4.New()
		codes := utf16.Encode([]rune(entry))
		if err := binary.Write(h, binary.LittleEndian, codes); err != nil {
			return "", fmt.Errorf("ntlm: %v", err)
		}
		return hex.EncodeToString(h.Sum(nil)), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrorUnsupportedAlgorithm, algo)
	}
}

// Salt characters for the crypt-style encodings. Alphanumeric keeps the
// output copy-paste friendly for students; this is a teaching tool, not a
// source of production-grade entropy.
const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const saltLength = 8

func randomSalt() (string, error) {
	b := make([]byte, saltLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = saltAlphabet[int(b[i])%len(saltAlphabet)]
	}
	return string(b), nil
}

// SHA512Crypt produces a $6$<salt>$<hash> shadow-style encoding with a fresh
// salt per call, so the same password hashes differently on every run, same
// as a real shadow file. Fails rather than falling back if the sha512-crypt
// primitive is not registered.
func SHA512Crypt(entry string) (string, error) {
	if !crypt.SHA512.Available() {
		return "", fmt.Errorf("%w: sha512-crypt", ErrorUnsupportedAlgorithm)
	}

	salt, err := randomSalt()
	if err != nil {
		return "", err
	}

	encoded, err := crypt.SHA512.New().Generate([]byte(entry), []byte("$6$"+salt))
	if err != nil {
		return "", fmt.Errorf("sha512-crypt: %v", err)
	}
	return encoded, nil
}

// Teaching cost: low enough that john chews through the lab wordlist in
// seconds, high enough to show the per-guess slowdown next to raw md5.
const bcryptCost = 8

// Bcrypt produces a $2a$… encoding with bcrypt's own embedded random salt.
func Bcrypt(entry string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(entry), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %v", err)
	}
	return string(hashed), nil
}

// yescrypt parameters matching the $y$jC5$ prefix below: N=32768, r=8.
const (
	yescryptN      = 32768
	yescryptR      = 8
	yescryptP      = 1
	yescryptKeyLen = 32
)

// Yescrypt produces a $y$jC5$<salt>$<key> encoding, the scheme modern
// distributions default to for /etc/shadow.
func Yescrypt(entry string) (string, error) {
	salt := make([]byte, 8)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key, err := yescrypt.Key([]byte(entry), salt, yescryptN, yescryptR, yescryptP, yescryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("%w: yescrypt: %v", ErrorUnsupportedAlgorithm, err)
	}

	return "$y$jC5$" + crypt64(salt) + "$" + crypt64(key), nil
}

// crypt64 packs bytes into the crypt(3) base64 alphabet, least significant
// bits first. Not interchangeable with encoding/base64.
func crypt64(src []byte) string {
	const itoa64 = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	var dst []byte
	var value uint32
	bits := 0
	for i := 0; i < len(src); i++ {
		value |= uint32(src[i]) << bits
		bits += 8
		for bits >= 6 {
			dst = append(dst, itoa64[value&0x3f])
			value >>= 6
			bits -= 6
		}
	}
	if bits > 0 {
		dst = append(dst, itoa64[value&0x3f])
	}
	return string(dst)
}

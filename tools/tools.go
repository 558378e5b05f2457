package tools

import (
	"crypto/sha512"
	"encoding/hex"
)

func EncryptTextSHA512(text string) string {
	sum := sha512.Sum512([]byte(text))
	return hex.EncodeToString(sum[:])
}

// HashPassword deriva o hash armazenado da senha: sha512 da senha, amarrado
// ao e-mail, e sha512 de novo. O e-mail no meio faz o hash ser único por
// conta mesmo com senhas repetidas.
func HashPassword(email, password string) string {
	inner := EncryptTextSHA512(password)
	return EncryptTextSHA512(email + ":" + inner)
}

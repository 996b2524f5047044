package ifc

import (
	"math/big"

	"github.com/google/uuid"
)

// ============================================================
// GlobalId
// ============================================================

// Алфавит base64-кодировки идентификаторов IFC (не RFC 4648).
const guidAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"

// NewGlobalID генерирует свежий 22-символьный GlobalId.
func NewGlobalID() string {
	return CompressUUID(uuid.New())
}

// CompressUUID кодирует 128-битный uuid в 22 символа по 6 бит;
// старшие 4 бита дополняются нулями.
func CompressUUID(u uuid.UUID) string {
	n := new(big.Int).SetBytes(u[:])
	base := big.NewInt(64)
	rem := new(big.Int)

	var out [22]byte
	for i := 0; i < 22; i++ {
		n.DivMod(n, base, rem)
		out[21-i] = guidAlphabet[rem.Int64()]
	}
	return string(out[:])
}

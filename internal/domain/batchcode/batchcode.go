// Package batchcode: álgebra pura de los códigos de lote.
// Formato: <prefijo>-<YYYYMMDD>-<secuencia>, con la secuencia rellenada a un
// mínimo de 3 dígitos. La secuencia se reinicia por combinación prefijo+fecha.

package batchcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultPrefix prefijo usado cuando el llamador no indica uno.
const DefaultPrefix = "BCH"

// minSeqDigits ancho mínimo de la secuencia. Más allá de 999 el sufijo se
// ensancha de forma natural (1000, 1001, ...) sin truncar.
const minSeqDigits = 3

// ErrMalformedSuffix indica que el segmento final del código no es un entero.
// Suele significar datos manipulados a mano o una colisión de prefijos.
var ErrMalformedSuffix = errors.New("batchcode: sufijo de secuencia no numérico")

// Base construye la base con ámbito de fecha: "<prefijo>-<YYYYMMDD>".
// Usa la fecha calendario local de t.
func Base(prefix string, t time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "-" + t.Format("20060102")
}

// NextSequence extrae el segmento numérico final de maxCode (lo que sigue al
// último '-') y devuelve ese valor + 1. Con maxCode vacío devuelve 1.
// Si el segmento no es un entero devuelve (1, ErrMalformedSuffix): la
// secuencia se reinicia para ese prefijo+fecha en lugar de fallar.
func NextSequence(maxCode string) (int, error) {
	if maxCode == "" {
		return 1, nil
	}
	idx := strings.LastIndex(maxCode, "-")
	if idx < 0 || idx == len(maxCode)-1 {
		return 1, ErrMalformedSuffix
	}
	n, err := strconv.Atoi(maxCode[idx+1:])
	if err != nil || n < 0 {
		return 1, ErrMalformedSuffix
	}
	return n + 1, nil
}

// Format produce el código final "<base>-<secuencia>" con relleno de ceros a
// la izquierda hasta 3 dígitos. Secuencias mayores a 999 se emiten completas.
func Format(base string, seq int) string {
	return fmt.Sprintf("%s-%0*d", base, minSeqDigits, seq)
}

// Fallback genera un código local "<prefijo>-<milisegundos-epoch>" para
// garantizar avance cuando el almacén no responde. Pierde la propiedad
// secuencial legible, pero mantiene la unicidad en la práctica.
func Fallback(prefix string, t time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s-%d", prefix, t.UnixMilli())
}

// Sequence sintetiza count códigos consecutivos a partir de base y start:
// Format(base, start), Format(base, start+1), ... Cada código se rellena de
// forma independiente, por lo que la serie puede cruzar el límite de 999.
func Sequence(base string, start, count int) []string {
	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		codes = append(codes, Format(base, start+i))
	}
	return codes
}

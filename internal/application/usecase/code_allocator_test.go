package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-lotes/internal/domain"
	"github.com/tu-usuario/inventario-lotes/pkg/logger"
)

// Fecha fija para que los códigos esperados sean deterministas.
var testDate = time.Date(2024, 6, 15, 10, 30, 0, 0, time.Local)

func newTestAllocator(repo *fakeBatchRepo) *CodeAllocator {
	a := NewCodeAllocator(repo, "", logger.Nop())
	a.now = func() time.Time { return testDate }
	return a
}

// ──────────────────────────────────────────────────────────────────────────────
// AllocateSingle
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocateSingle_BucketVacioEmpiezaEnUno(t *testing.T) {
	repo := newFakeBatchRepo()
	a := newTestAllocator(repo)

	code := a.AllocateSingle(context.Background(), "")

	assert.Equal(t, "BCH-20240615-001", code)
}

func TestAllocateSingle_IncrementaElMaximoDelBucket(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.seedCode("BCH-20240615-041")
	repo.seedCode("BCH-20240615-042")
	a := newTestAllocator(repo)

	code := a.AllocateSingle(context.Background(), "")

	assert.Equal(t, "BCH-20240615-043", code)
}

func TestAllocateSingle_LaSecuenciaReiniciaPorFecha(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.seedCode("BCH-20240614-007")
	a := newTestAllocator(repo)

	code := a.AllocateSingle(context.Background(), "")

	assert.Equal(t, "BCH-20240615-001", code,
		"los códigos de otra fecha no deben influir en el bucket de hoy")
}

func TestAllocateSingle_PrefijosIndependientes(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.seedCode("BCH-20240615-009")
	a := newTestAllocator(repo)

	code := a.AllocateSingle(context.Background(), "LAB")

	assert.Equal(t, "LAB-20240615-001", code,
		"cada prefijo lleva su propia secuencia")
}

func TestAllocateSingle_SufijoMalformadoReiniciaEnUno(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.seedCode("BCH-20240615-zzz")
	a := newTestAllocator(repo)

	code := a.AllocateSingle(context.Background(), "")

	assert.Equal(t, "BCH-20240615-001", code,
		"un máximo corrupto reinicia la secuencia, no aborta")
}

func TestAllocateSingle_AlmacenCaidoDegradaATimestamp(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.maxErr = errors.New("conexión rechazada")
	a := newTestAllocator(repo)

	code := a.AllocateSingle(context.Background(), "")

	assert.Equal(t, fmt.Sprintf("BCH-%d", testDate.UnixMilli()), code,
		"con el almacén caído debe emitirse un código local, nunca un error")
}

// ──────────────────────────────────────────────────────────────────────────────
// AllocateBatch
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocateBatch_CodigosConsecutivosConUnaSolaConsulta(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.seedCode("BCH-20240615-042")
	a := newTestAllocator(repo)

	codes, err := a.AllocateBatch(context.Background(), 3, "")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"BCH-20240615-043",
		"BCH-20240615-044",
		"BCH-20240615-045",
	}, codes)
	assert.Equal(t, 1, repo.maxCalls,
		"count códigos deben salir de una sola ida al almacén")
}

func TestAllocateBatch_CruzaLos999SinTruncar(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.seedCode("BCH-20240615-999")
	a := newTestAllocator(repo)

	codes, err := a.AllocateBatch(context.Background(), 2, "")

	require.NoError(t, err)
	assert.Equal(t, []string{"BCH-20240615-1000", "BCH-20240615-1001"}, codes,
		"pasado 999 el relleno se ensancha, no se trunca")
}

func TestAllocateBatch_CountInvalido(t *testing.T) {
	repo := newFakeBatchRepo()
	a := newTestAllocator(repo)

	_, err := a.AllocateBatch(context.Background(), 0, "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAllocateBatch_ModoDegradadoProduceCodigosDistintos(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.maxErr = errors.New("conexión rechazada")
	a := newTestAllocator(repo)

	codes, err := a.AllocateBatch(context.Background(), 3, "")

	require.NoError(t, err)
	require.Len(t, codes, 3)
	seen := make(map[string]struct{})
	for _, c := range codes {
		seen[c] = struct{}{}
	}
	assert.Len(t, seen, 3, "los códigos fallback de un mismo lote no deben repetirse")
}

package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/inventario-lotes/internal/domain"
	"github.com/tu-usuario/inventario-lotes/internal/domain/batchcode"
	"github.com/tu-usuario/inventario-lotes/internal/domain/repository"
	"github.com/tu-usuario/inventario-lotes/pkg/logger"
)

// CodeAllocator genera códigos de lote únicos y ordenables con ámbito de fecha.
//
// Lectura + cómputo puros: el asignador NO escribe. La fila con el código debe
// persistirla el llamador; dos asignaciones concurrentes pueden calcular la
// misma secuencia y solo la constraint de unicidad en batches.code lo detecta
// al escribir (unicidad de mejor esfuerzo, no garantizada).
type CodeAllocator struct {
	batchRepo     repository.BatchRepository
	defaultPrefix string
	log           *logger.Logger
	now           func() time.Time
}

// NewCodeAllocator construye el asignador. defaultPrefix vacío = "BCH".
func NewCodeAllocator(batchRepo repository.BatchRepository, defaultPrefix string, log *logger.Logger) *CodeAllocator {
	if defaultPrefix == "" {
		defaultPrefix = batchcode.DefaultPrefix
	}
	return &CodeAllocator{
		batchRepo:     batchRepo,
		defaultPrefix: defaultPrefix,
		log:           log,
		now:           time.Now,
	}
}

// AllocateSingle devuelve un código "<prefijo>-<YYYYMMDD>-<seq>" consultando el
// máximo existente del bucket prefijo+fecha. Si el almacén no responde, degrada
// a un código local con timestamp en milisegundos para garantizar avance
// (se pierde la propiedad secuencial legible) y nunca devuelve error.
func (a *CodeAllocator) AllocateSingle(ctx context.Context, prefix string) string {
	code, _ := a.allocate(ctx, prefix)
	return code
}

// AllocateBatch devuelve count códigos consecutivos con una sola ida al almacén:
// consulta el máximo una vez y sintetiza los count-1 siguientes localmente.
func (a *CodeAllocator) AllocateBatch(ctx context.Context, count int, prefix string) ([]string, error) {
	if count < 1 {
		return nil, domain.ErrInvalidInput
	}
	first, seq := a.allocate(ctx, prefix)
	if seq == 0 {
		// Modo degradado (almacén caído): códigos timestamp, uno por unidad.
		// UnixMilli no garantiza avance entre iteraciones tan rápidas, así que
		// se deriva del primero con sufijos -1, -2, ...
		codes := make([]string, 0, count)
		codes = append(codes, first)
		for i := 1; i < count; i++ {
			codes = append(codes, batchcode.Format(first, i))
		}
		return codes, nil
	}
	base := batchcode.Base(a.resolvePrefix(prefix), a.now())
	return batchcode.Sequence(base, seq, count), nil
}

// allocate devuelve el código y la secuencia usada (0 = código fallback).
func (a *CodeAllocator) allocate(ctx context.Context, prefix string) (string, int) {
	p := a.resolvePrefix(prefix)
	now := a.now()
	base := batchcode.Base(p, now)

	maxCode, err := a.batchRepo.MaxCodeLike(ctx, base+"-%")
	if err != nil {
		a.log.Warn().Err(err).Str("prefix", p).
			Msg("almacén no disponible al asignar código; usando fallback con timestamp")
		return batchcode.Fallback(p, now), 0
	}

	seq, err := batchcode.NextSequence(maxCode)
	if err != nil {
		// Sufijo manipulado o colisión de prefijos: se reinicia en 1.
		a.log.Warn().Err(err).Str("max_code", maxCode).
			Msg("sufijo de secuencia malformado; reiniciando secuencia del bucket")
	}
	return batchcode.Format(base, seq), seq
}

func (a *CodeAllocator) resolvePrefix(prefix string) string {
	if prefix == "" {
		return a.defaultPrefix
	}
	return prefix
}

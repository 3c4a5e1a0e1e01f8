// recalc recorre todas las facturas y recalcula campos derivados, porcentaje
// y comisión ajustada con las reglas vigentes. Útil tras importar datos
// históricos o cambiar parámetros del motor (tolerancia, días de pérdida).
//
// Uso: go run ./cmd/recalc [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JuanMV14/comisiones-sub000/internal/domain/comision"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
	"github.com/JuanMV14/comisiones-sub000/internal/infrastructure/postgres"
	"github.com/JuanMV14/comisiones-sub000/pkg/config"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "mostrar cambios sin escribir en la base")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	facturaRepo := postgres.NewFacturaRepository(pool)
	devolucionRepo := postgres.NewDevolucionRepository(pool)
	reglas := comision.ReglasPorDefecto()
	if cfg.Comision.ToleranciaConsistencia > 0 {
		reglas.ToleranciaConsistencia = decimal.NewFromFloat(cfg.Comision.ToleranciaConsistencia)
	}
	if cfg.Comision.DiasPerdidaComision > 0 {
		reglas.DiasPerdidaComision = cfg.Comision.DiasPerdidaComision
	}

	facturas, err := facturaRepo.List(repository.FacturaFiltro{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "listar facturas: %v\n", err)
		os.Exit(1)
	}

	hoy := time.Now()
	cambiadas := 0
	for _, f := range facturas {
		antes := f.ComisionAjustada

		reglas.DerivarCampos(f, hoy)
		res := comision.Calcular(f.BaseComision, f.ClientePropio,
			f.DescuentoAdicional.IsPositive() || f.DescuentoAplicado.IsPositive())
		f.Porcentaje = res.Porcentaje
		f.Comision = res.Comision

		if f.Pagado && f.DiasPagoReal != nil && reglas.PierdeComision(*f.DiasPagoReal) {
			f.ComisionPerdida = true
			f.RazonPerdida = fmt.Sprintf("Pago tardío: %d días", *f.DiasPagoReal)
			f.ComisionAjustada = decimal.Zero
		} else {
			f.ComisionPerdida = false
			f.RazonPerdida = ""
			total, err := devolucionRepo.TotalAfectaComision(f.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "devoluciones de %s: %v\n", f.ID, err)
				os.Exit(1)
			}
			ajuste := comision.AjustarPorDevoluciones(f, total)
			f.ValorDevuelto = total
			f.ComisionAjustada = ajuste.Comision
		}

		if f.ComisionAjustada.Equal(antes) {
			continue
		}
		cambiadas++
		fmt.Printf("%s  %s  comision_ajustada %s -> %s\n",
			f.Pedido, f.Cliente, antes.StringFixed(2), f.ComisionAjustada.StringFixed(2))

		if *dryRun {
			continue
		}
		f.UpdatedAt = hoy
		if err := facturaRepo.Update(f); err != nil {
			fmt.Fprintf(os.Stderr, "actualizar %s: %v\n", f.ID, err)
			os.Exit(1)
		}
	}

	fmt.Printf("%d facturas revisadas, %d con cambios\n", len(facturas), cambiadas)
}

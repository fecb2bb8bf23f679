package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusNormalizers(t *testing.T) {
	t.Run("contract", func(t *testing.T) {
		assert.Equal(t, "ativo", contractStatus("Vigente"))
		assert.Equal(t, "ativo", contractStatus("ATIVO até 12/2026"))
		assert.Equal(t, "encerrado", contractStatus("Finalizado"))
		assert.Equal(t, "suspenso", contractStatus("Paralisado"))
		assert.Equal(t, "ativo", contractStatus(""))
		assert.Equal(t, "ativo", contractStatus("status desconhecido"))
	})

	t.Run("employee", func(t *testing.T) {
		assert.Equal(t, "inativo", employeeStatus("Desligado"))
		assert.Equal(t, "ferias", employeeStatus("Férias"))
		assert.Equal(t, "afastado", employeeStatus("Licença"))
	})

	t.Run("vehicle", func(t *testing.T) {
		assert.Equal(t, "manutencao", vehicleStatus("Em Manutenção"))
		assert.Equal(t, "inativo", vehicleStatus("vendido"))
	})

	t.Run("equipment", func(t *testing.T) {
		assert.Equal(t, "operante", equipmentStatus("OK"))
		assert.Equal(t, "inoperante", equipmentStatus("Quebrado"))
		assert.Equal(t, "calibracao", equipmentStatus("Em Calibração"))
	})

	t.Run("invoice", func(t *testing.T) {
		assert.Equal(t, "paga", invoiceStatus("Quitada"))
		assert.Equal(t, "cancelada", invoiceStatus("Estornada"))
		assert.Equal(t, "pendente", invoiceStatus("Em Aberto"))
	})
}

func TestPaidFlag(t *testing.T) {
	assert.Equal(t, int64(1), paidFlag("Sim"))
	assert.Equal(t, int64(1), paidFlag("PAGO"))
	assert.Equal(t, int64(1), paidFlag("x"))
	assert.Equal(t, int64(0), paidFlag("Não"))
	assert.Equal(t, int64(0), paidFlag(""))
	assert.Equal(t, int64(0), paidFlag(nil))
}

func TestRegistryIntegrity(t *testing.T) {
	for entity, mappings := range registries {
		t.Run(entity, func(t *testing.T) {
			require.NotEmpty(t, mappings)

			hasRequired := false
			seen := make(map[string]bool)
			for _, m := range mappings {
				assert.NotEmpty(t, m.SourceHeader)
				assert.NotEmpty(t, m.TargetField)
				assert.NotNil(t, m.Transform)
				if m.Required {
					hasRequired = true
				}
				key := NormalizeHeader(m.SourceHeader)
				assert.False(t, seen[key], "duplicate header %q", m.SourceHeader)
				seen[key] = true
			}
			// Every importable entity needs at least one identifying column.
			assert.True(t, hasRequired)
		})
	}
}

func TestRegistry(t *testing.T) {
	_, ok := Registry("contracts")
	assert.True(t, ok)

	_, ok = Registry("sla_metrics")
	assert.False(t, ok)
}

func TestTemplateHeaders(t *testing.T) {
	headers := TemplateHeaders("contracts")
	// One canonical header per target field, in registry order.
	assert.Equal(t, []string{
		"Número do Contrato", "Cliente", "Descrição",
		"Data de Início", "Data de Término", "Valor Mensal", "Status",
	}, headers)

	assert.Nil(t, TemplateHeaders("desconhecido"))
}

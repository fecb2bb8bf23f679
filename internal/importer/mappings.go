package importer

import "strings"

// TransformFunc converts one raw cell value into its storage value.
type TransformFunc func(raw any) any

// ColumnMapping pairs an expected spreadsheet header with a storage field.
// Several mappings may point at the same TargetField under different
// SourceHeader spellings to tolerate legacy spreadsheet variants.
type ColumnMapping struct {
	SourceHeader string
	TargetField  string
	Required     bool
	Transform    TransformFunc
}

func asNumber(raw any) any   { return ParseNumber(raw) }
func asInteger(raw any) any  { return ParseInteger(raw) }
func asDate(raw any) any     { return deref(ParseDate(raw)) }
func asMonth(raw any) any    { return deref(ParseMonth(raw)) }
func asDateTime(raw any) any { return deref(ParseDateTime(raw)) }
func asString(raw any) any   { return ParseString(raw) }

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// statusNormalizer builds a transform that maps free-text Portuguese status
// labels onto a canonical enum value, falling back to def when the label is
// not recognized.
func statusNormalizer(def string, labels map[string]string) TransformFunc {
	return func(raw any) any {
		key := NormalizeHeader(ParseString(raw))
		if key == "" {
			return def
		}
		if v, ok := labels[key]; ok {
			return v
		}
		// Tolerate labels that merely start with a known prefix
		// ("ativo até 12/2026" still means ativo).
		for label, v := range labels {
			if strings.HasPrefix(key, label) {
				return v
			}
		}
		return def
	}
}

var contractStatus = statusNormalizer("ativo", map[string]string{
	"ativo": "ativo", "vigente": "ativo", "em vigor": "ativo",
	"encerrado": "encerrado", "finalizado": "encerrado", "concluido": "encerrado",
	"suspenso": "suspenso", "pausado": "suspenso", "paralisado": "suspenso",
})

var employeeStatus = statusNormalizer("ativo", map[string]string{
	"ativo": "ativo", "contratado": "ativo",
	"inativo": "inativo", "desligado": "inativo", "demitido": "inativo",
	"ferias": "ferias", "de ferias": "ferias",
	"afastado": "afastado", "licenca": "afastado", "licença": "afastado",
})

var vehicleStatus = statusNormalizer("ativo", map[string]string{
	"ativo": "ativo", "em uso": "ativo", "operacional": "ativo",
	"manutencao": "manutencao", "em manutencao": "manutencao", "oficina": "manutencao",
	"inativo": "inativo", "baixado": "inativo", "vendido": "inativo",
})

var equipmentStatus = statusNormalizer("operante", map[string]string{
	"operante": "operante", "operacional": "operante", "ok": "operante", "em operacao": "operante",
	"manutencao": "manutencao", "em manutencao": "manutencao",
	"inoperante": "inoperante", "quebrado": "inoperante", "parado": "inoperante",
	"calibracao": "calibracao", "em calibracao": "calibracao", "aferindo": "calibracao",
})

var invoiceStatus = statusNormalizer("pendente", map[string]string{
	"pendente": "pendente", "em aberto": "pendente", "aberta": "pendente",
	"paga": "paga", "pago": "paga", "quitada": "paga", "liquidada": "paga",
	"cancelada": "cancelada", "cancelado": "cancelada", "estornada": "cancelada",
})

var paidFlag = TransformFunc(func(raw any) any {
	switch NormalizeHeader(ParseString(raw)) {
	case "sim", "pago", "paga", "quitado", "quitada", "true", "1", "x":
		return int64(1)
	default:
		return int64(0)
	}
})

// registries holds one mapping set per importable entity, keyed by the
// entity route name.
var registries = map[string][]ColumnMapping{
	"contracts": {
		{SourceHeader: "Número do Contrato", TargetField: "number", Required: true, Transform: asString},
		{SourceHeader: "Contrato", TargetField: "number", Transform: asString},
		{SourceHeader: "Nº Contrato", TargetField: "number", Transform: asString},
		{SourceHeader: "Cliente", TargetField: "client", Required: true, Transform: asString},
		{SourceHeader: "Descrição", TargetField: "description", Transform: asString},
		{SourceHeader: "Objeto", TargetField: "description", Transform: asString},
		{SourceHeader: "Data de Início", TargetField: "start_date", Transform: asDate},
		{SourceHeader: "Início", TargetField: "start_date", Transform: asDate},
		{SourceHeader: "Data de Término", TargetField: "end_date", Transform: asDate},
		{SourceHeader: "Término", TargetField: "end_date", Transform: asDate},
		{SourceHeader: "Vigência", TargetField: "end_date", Transform: asDate},
		{SourceHeader: "Valor Mensal", TargetField: "monthly_value", Transform: asNumber},
		{SourceHeader: "Status", TargetField: "status", Transform: contractStatus},
		{SourceHeader: "Situação", TargetField: "status", Transform: contractStatus},
	},
	"employees": {
		{SourceHeader: "Nome", TargetField: "name", Required: true, Transform: asString},
		{SourceHeader: "Funcionário", TargetField: "name", Transform: asString},
		{SourceHeader: "CPF", TargetField: "cpf", Transform: asString},
		{SourceHeader: "Cargo", TargetField: "role_title", Transform: asString},
		{SourceHeader: "Função", TargetField: "role_title", Transform: asString},
		{SourceHeader: "Telefone", TargetField: "phone", Transform: asString},
		{SourceHeader: "E-mail", TargetField: "email", Transform: asString},
		{SourceHeader: "Email", TargetField: "email", Transform: asString},
		{SourceHeader: "Data de Admissão", TargetField: "admission_date", Transform: asDate},
		{SourceHeader: "Admissão", TargetField: "admission_date", Transform: asDate},
		{SourceHeader: "Salário", TargetField: "salary", Transform: asNumber},
		{SourceHeader: "Status", TargetField: "status", Transform: employeeStatus},
		{SourceHeader: "Situação", TargetField: "status", Transform: employeeStatus},
	},
	"vehicles": {
		{SourceHeader: "Placa", TargetField: "plate", Required: true, Transform: asString},
		{SourceHeader: "Modelo", TargetField: "model", Transform: asString},
		{SourceHeader: "Marca", TargetField: "brand", Transform: asString},
		{SourceHeader: "Ano", TargetField: "year", Transform: asInteger},
		{SourceHeader: "RENAVAM", TargetField: "renavam", Transform: asString},
		{SourceHeader: "Combustível", TargetField: "fuel_type", Transform: asString},
		{SourceHeader: "Status", TargetField: "status", Transform: vehicleStatus},
		{SourceHeader: "Situação", TargetField: "status", Transform: vehicleStatus},
	},
	"equipment": {
		{SourceHeader: "Código do Equipamento", TargetField: "code", Required: true, Transform: asString},
		{SourceHeader: "Cód. Equipamento", TargetField: "code", Transform: asString},
		{SourceHeader: "Equipamento ID", TargetField: "code", Transform: asString},
		{SourceHeader: "Nome", TargetField: "name", Required: true, Transform: asString},
		{SourceHeader: "Equipamento", TargetField: "name", Transform: asString},
		{SourceHeader: "Número de Série", TargetField: "serial_number", Transform: asString},
		{SourceHeader: "Série", TargetField: "serial_number", Transform: asString},
		{SourceHeader: "Localização", TargetField: "location", Transform: asString},
		{SourceHeader: "Local", TargetField: "location", Transform: asString},
		{SourceHeader: "Status", TargetField: "status", Transform: equipmentStatus},
		{SourceHeader: "Situação", TargetField: "status", Transform: equipmentStatus},
	},
	"fuel_records": {
		{SourceHeader: "Placa", TargetField: "vehicle_plate", Required: true, Transform: asString},
		{SourceHeader: "Veículo", TargetField: "vehicle_plate", Transform: asString},
		{SourceHeader: "Data", TargetField: "record_date", Required: true, Transform: asDate},
		{SourceHeader: "Data do Abastecimento", TargetField: "record_date", Transform: asDate},
		{SourceHeader: "Litros", TargetField: "liters", Transform: asNumber},
		{SourceHeader: "Preço por Litro", TargetField: "price_per_liter", Transform: asNumber},
		{SourceHeader: "Preço/Litro", TargetField: "price_per_liter", Transform: asNumber},
		{SourceHeader: "Valor Total", TargetField: "total_value", Transform: asNumber},
		{SourceHeader: "Total", TargetField: "total_value", Transform: asNumber},
		{SourceHeader: "Hodômetro", TargetField: "odometer", Transform: asInteger},
		{SourceHeader: "KM", TargetField: "odometer", Transform: asInteger},
		{SourceHeader: "Combustível", TargetField: "fuel_type", Transform: asString},
	},
	"invoices": {
		{SourceHeader: "Número da Nota", TargetField: "number", Required: true, Transform: asString},
		{SourceHeader: "Nota Fiscal", TargetField: "number", Transform: asString},
		{SourceHeader: "NF", TargetField: "number", Transform: asString},
		{SourceHeader: "Contrato", TargetField: "contract_number", Transform: asString},
		{SourceHeader: "Data de Emissão", TargetField: "issue_date", Transform: asDate},
		{SourceHeader: "Emissão", TargetField: "issue_date", Transform: asDate},
		{SourceHeader: "Data de Vencimento", TargetField: "due_date", Transform: asDate},
		{SourceHeader: "Vencimento", TargetField: "due_date", Transform: asDate},
		{SourceHeader: "Valor", TargetField: "amount", Transform: asNumber},
		{SourceHeader: "Status", TargetField: "status", Transform: invoiceStatus},
		{SourceHeader: "Situação", TargetField: "status", Transform: invoiceStatus},
	},
	"inventory": {
		{SourceHeader: "Item", TargetField: "name", Required: true, Transform: asString},
		{SourceHeader: "Descrição do Item", TargetField: "name", Transform: asString},
		{SourceHeader: "Categoria", TargetField: "category", Transform: asString},
		{SourceHeader: "Quantidade", TargetField: "quantity", Transform: asNumber},
		{SourceHeader: "Qtd", TargetField: "quantity", Transform: asNumber},
		{SourceHeader: "Quantidade Mínima", TargetField: "min_quantity", Transform: asNumber},
		{SourceHeader: "Estoque Mínimo", TargetField: "min_quantity", Transform: asNumber},
		{SourceHeader: "Unidade", TargetField: "unit", Transform: asString},
		{SourceHeader: "Localização", TargetField: "location", Transform: asString},
	},
	"calibrations": {
		{SourceHeader: "Código do Equipamento", TargetField: "equipment_code", Required: true, Transform: asString},
		{SourceHeader: "Cód. Equipamento", TargetField: "equipment_code", Transform: asString},
		{SourceHeader: "Equipamento ID", TargetField: "equipment_code", Transform: asString},
		{SourceHeader: "Última Calibração", TargetField: "last_date", Transform: asDate},
		{SourceHeader: "Data da Calibração", TargetField: "last_date", Transform: asDate},
		{SourceHeader: "Próxima Calibração", TargetField: "next_date", Required: true, Transform: asDate},
		{SourceHeader: "Validade", TargetField: "next_date", Transform: asDate},
		{SourceHeader: "Certificado", TargetField: "certificate", Transform: asString},
		{SourceHeader: "Fornecedor", TargetField: "provider", Transform: asString},
		{SourceHeader: "Laboratório", TargetField: "provider", Transform: asString},
	},
	"energy_bills": {
		{SourceHeader: "Instalação", TargetField: "installation", Required: true, Transform: asString},
		{SourceHeader: "Unidade Consumidora", TargetField: "installation", Transform: asString},
		{SourceHeader: "UC", TargetField: "installation", Transform: asString},
		{SourceHeader: "Mês de Referência", TargetField: "reference_month", Transform: asMonth},
		{SourceHeader: "Referência", TargetField: "reference_month", Transform: asMonth},
		{SourceHeader: "Competência", TargetField: "reference_month", Transform: asMonth},
		{SourceHeader: "Vencimento", TargetField: "due_date", Transform: asDate},
		{SourceHeader: "Data de Vencimento", TargetField: "due_date", Transform: asDate},
		{SourceHeader: "Valor", TargetField: "amount", Transform: asNumber},
		{SourceHeader: "Consumo (kWh)", TargetField: "consumption_kwh", Transform: asNumber},
		{SourceHeader: "Consumo", TargetField: "consumption_kwh", Transform: asNumber},
		{SourceHeader: "Pago", TargetField: "paid", Transform: paidFlag},
	},
	"internet_bills": {
		{SourceHeader: "Provedor", TargetField: "provider", Required: true, Transform: asString},
		{SourceHeader: "Operadora", TargetField: "provider", Transform: asString},
		{SourceHeader: "Mês de Referência", TargetField: "reference_month", Transform: asMonth},
		{SourceHeader: "Competência", TargetField: "reference_month", Transform: asMonth},
		{SourceHeader: "Vencimento", TargetField: "due_date", Transform: asDate},
		{SourceHeader: "Valor", TargetField: "amount", Transform: asNumber},
		{SourceHeader: "Pago", TargetField: "paid", Transform: paidFlag},
	},
	"seals": {
		{SourceHeader: "Código do Lacre", TargetField: "code", Required: true, Transform: asString},
		{SourceHeader: "Lacre", TargetField: "code", Transform: asString},
		{SourceHeader: "Código do Equipamento", TargetField: "equipment_code", Transform: asString},
		{SourceHeader: "Data de Instalação", TargetField: "installed_at", Transform: asDate},
		{SourceHeader: "Instalado em", TargetField: "installed_at", Transform: asDate},
		{SourceHeader: "Status", TargetField: "status", Transform: asString},
	},
	"toll_tags": {
		{SourceHeader: "Tag", TargetField: "tag_code", Required: true, Transform: asString},
		{SourceHeader: "Código da Tag", TargetField: "tag_code", Transform: asString},
		{SourceHeader: "Placa", TargetField: "vehicle_plate", Transform: asString},
		{SourceHeader: "Operadora", TargetField: "provider", Transform: asString},
	},
	"mileage_records": {
		{SourceHeader: "Placa", TargetField: "vehicle_plate", Required: true, Transform: asString},
		{SourceHeader: "Veículo", TargetField: "vehicle_plate", Transform: asString},
		{SourceHeader: "Mês", TargetField: "month", Required: true, Transform: asMonth},
		{SourceHeader: "Competência", TargetField: "month", Transform: asMonth},
		{SourceHeader: "KM Rodados", TargetField: "km", Transform: asNumber},
		{SourceHeader: "Quilometragem", TargetField: "km", Transform: asNumber},
		{SourceHeader: "KM", TargetField: "km", Transform: asNumber},
	},
}

// Registry returns the column mappings for an importable entity, or false
// when the entity has no import support.
func Registry(entity string) ([]ColumnMapping, bool) {
	m, ok := registries[entity]
	return m, ok
}

// TemplateHeaders lists the canonical (first-seen per target field) headers
// for an entity, in registry order. Used to build downloadable templates.
func TemplateHeaders(entity string) []string {
	mappings, ok := registries[entity]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var headers []string
	for _, m := range mappings {
		if !seen[m.TargetField] {
			seen[m.TargetField] = true
			headers = append(headers, m.SourceHeader)
		}
	}
	return headers
}

// Package entity collapses the per-module CRUD surface into declarative
// descriptors: every business module is the same list/form/import/export
// screen over a different table, so the table shape is data, not code.
package entity

// Column is one exposed table column with its Portuguese export label.
type Column struct {
	Name  string
	Label string
}

// Dependency names a referencing table checked before deletes.
type Dependency struct {
	Table  string
	Column string
	Label  string
}

// Lookup resolves an imported business key (a vehicle plate, an equipment
// code) into the foreign-key column the table actually stores.
type Lookup struct {
	Field        string // field name produced by the import mapping
	Table        string
	MatchColumn  string
	TargetColumn string
}

// Descriptor declares one CRUD module.
type Descriptor struct {
	Name          string // route segment and import registry key
	Table         string
	Label         string // Portuguese module label, used in export filenames
	Columns       []Column
	SearchColumns []string
	Dependencies  []Dependency
	Lookups       []Lookup
	// StatusTimestampColumn, when set, is stamped with the current date
	// every time a write changes the status column.
	StatusTimestampColumn string
}

// HasColumn reports whether name is a declared column of the module.
func (d Descriptor) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

var descriptors = []Descriptor{
	{
		Name: "contracts", Table: "contracts", Label: "contratos",
		Columns: []Column{
			{"number", "Número"}, {"client", "Cliente"}, {"description", "Descrição"},
			{"start_date", "Início"}, {"end_date", "Término"},
			{"monthly_value", "Valor Mensal"}, {"status", "Status"},
		},
		SearchColumns: []string{"number", "client", "description"},
		Dependencies: []Dependency{
			{Table: "invoices", Column: "contract_id", Label: "notas fiscais"},
			{Table: "vehicles", Column: "contract_id", Label: "veículos"},
			{Table: "equipment", Column: "contract_id", Label: "equipamentos"},
			{Table: "sla_metrics", Column: "contract_id", Label: "métricas de SLA"},
		},
	},
	{
		Name: "employees", Table: "employees", Label: "funcionarios",
		Columns: []Column{
			{"name", "Nome"}, {"cpf", "CPF"}, {"role_title", "Cargo"},
			{"phone", "Telefone"}, {"email", "E-mail"},
			{"admission_date", "Admissão"}, {"salary", "Salário"}, {"status", "Status"},
		},
		SearchColumns: []string{"name", "cpf", "role_title"},
		Dependencies: []Dependency{
			{Table: "fuel_records", Column: "employee_id", Label: "abastecimentos"},
		},
	},
	{
		Name: "vehicles", Table: "vehicles", Label: "veiculos",
		Columns: []Column{
			{"plate", "Placa"}, {"model", "Modelo"}, {"brand", "Marca"},
			{"year", "Ano"}, {"renavam", "RENAVAM"}, {"fuel_type", "Combustível"},
			{"status", "Status"}, {"contract_id", "Contrato"},
		},
		SearchColumns: []string{"plate", "model", "brand"},
		Dependencies: []Dependency{
			{Table: "fuel_records", Column: "vehicle_id", Label: "abastecimentos"},
			{Table: "mileage_records", Column: "vehicle_id", Label: "registros de quilometragem"},
			{Table: "toll_tags", Column: "vehicle_id", Label: "tags de pedágio"},
		},
	},
	{
		Name: "equipment", Table: "equipment", Label: "equipamentos",
		Columns: []Column{
			{"code", "Código"}, {"name", "Nome"}, {"serial_number", "Número de Série"},
			{"location", "Localização"}, {"status", "Status"},
			{"status_changed_at", "Status desde"}, {"contract_id", "Contrato"},
		},
		SearchColumns: []string{"code", "name", "serial_number", "location"},
		Dependencies: []Dependency{
			{Table: "calibrations", Column: "equipment_id", Label: "calibrações"},
			{Table: "seals", Column: "equipment_id", Label: "lacres"},
		},
		StatusTimestampColumn: "status_changed_at",
	},
	{
		Name: "fuel_records", Table: "fuel_records", Label: "abastecimentos",
		Columns: []Column{
			{"vehicle_id", "Veículo"}, {"employee_id", "Funcionário"},
			{"record_date", "Data"}, {"liters", "Litros"},
			{"price_per_liter", "Preço/Litro"}, {"total_value", "Valor Total"},
			{"odometer", "Hodômetro"}, {"fuel_type", "Combustível"},
		},
		SearchColumns: []string{"fuel_type"},
		Lookups: []Lookup{
			{Field: "vehicle_plate", Table: "vehicles", MatchColumn: "plate", TargetColumn: "vehicle_id"},
		},
	},
	{
		Name: "mileage_records", Table: "mileage_records", Label: "quilometragem",
		Columns: []Column{
			{"vehicle_id", "Veículo"}, {"month", "Mês"}, {"km", "KM Rodados"},
		},
		Lookups: []Lookup{
			{Field: "vehicle_plate", Table: "vehicles", MatchColumn: "plate", TargetColumn: "vehicle_id"},
		},
	},
	{
		Name: "energy_bills", Table: "energy_bills", Label: "contas-energia",
		Columns: []Column{
			{"installation", "Instalação"}, {"reference_month", "Competência"},
			{"due_date", "Vencimento"}, {"amount", "Valor"},
			{"consumption_kwh", "Consumo (kWh)"}, {"paid", "Pago"},
		},
		SearchColumns: []string{"installation"},
	},
	{
		Name: "internet_bills", Table: "internet_bills", Label: "contas-internet",
		Columns: []Column{
			{"provider", "Provedor"}, {"reference_month", "Competência"},
			{"due_date", "Vencimento"}, {"amount", "Valor"}, {"paid", "Pago"},
		},
		SearchColumns: []string{"provider"},
	},
	{
		Name: "invoices", Table: "invoices", Label: "notas-fiscais",
		Columns: []Column{
			{"number", "Número"}, {"contract_id", "Contrato"},
			{"issue_date", "Emissão"}, {"due_date", "Vencimento"},
			{"amount", "Valor"}, {"status", "Status"},
		},
		SearchColumns: []string{"number"},
		Lookups: []Lookup{
			{Field: "contract_number", Table: "contracts", MatchColumn: "number", TargetColumn: "contract_id"},
		},
	},
	{
		Name: "inventory", Table: "inventory", Label: "almoxarifado",
		Columns: []Column{
			{"name", "Item"}, {"category", "Categoria"}, {"quantity", "Quantidade"},
			{"min_quantity", "Quantidade Mínima"}, {"unit", "Unidade"}, {"location", "Localização"},
		},
		SearchColumns: []string{"name", "category", "location"},
	},
	{
		Name: "calibrations", Table: "calibrations", Label: "calibracoes",
		Columns: []Column{
			{"equipment_id", "Equipamento"}, {"last_date", "Última Calibração"},
			{"next_date", "Próxima Calibração"}, {"certificate", "Certificado"},
			{"provider", "Laboratório"},
		},
		SearchColumns: []string{"certificate", "provider"},
		Lookups: []Lookup{
			{Field: "equipment_code", Table: "equipment", MatchColumn: "code", TargetColumn: "equipment_id"},
		},
	},
	{
		Name: "seals", Table: "seals", Label: "lacres",
		Columns: []Column{
			{"code", "Código"}, {"equipment_id", "Equipamento"},
			{"installed_at", "Instalado em"}, {"status", "Status"},
		},
		SearchColumns: []string{"code"},
		Lookups: []Lookup{
			{Field: "equipment_code", Table: "equipment", MatchColumn: "code", TargetColumn: "equipment_id"},
		},
	},
	{
		Name: "toll_tags", Table: "toll_tags", Label: "tags-pedagio",
		Columns: []Column{
			{"tag_code", "Tag"}, {"vehicle_id", "Veículo"}, {"provider", "Operadora"},
		},
		SearchColumns: []string{"tag_code", "provider"},
		Lookups: []Lookup{
			{Field: "vehicle_plate", Table: "vehicles", MatchColumn: "plate", TargetColumn: "vehicle_id"},
		},
	},
	{
		Name: "sla_metrics", Table: "sla_metrics", Label: "sla",
		Columns: []Column{
			{"contract_id", "Contrato"}, {"reference_month", "Competência"},
			{"target", "Meta (%)"}, {"achieved", "Atingido (%)"},
		},
	},
	{
		Name: "customer_satisfaction", Table: "customer_satisfaction", Label: "satisfacao",
		Columns: []Column{
			{"contract_id", "Contrato"}, {"survey_date", "Data da Pesquisa"},
			{"score", "Nota"}, {"comments", "Comentários"},
		},
		SearchColumns: []string{"comments"},
	},
	{
		Name: "infrastructure_services", Table: "infrastructure_services", Label: "chamados",
		Columns: []Column{
			{"title", "Título"}, {"description", "Descrição"}, {"location", "Local"},
			{"requested_at", "Abertura"}, {"resolved_at", "Conclusão"}, {"status", "Status"},
		},
		SearchColumns: []string{"title", "description", "location"},
	},
	{
		Name: "kanban_columns", Table: "kanban_columns", Label: "colunas-kanban",
		Columns: []Column{
			{"title", "Título"}, {"position", "Posição"},
		},
		Dependencies: []Dependency{
			{Table: "pending_issues", Column: "kanban_column_id", Label: "pendências"},
		},
	},
	{
		Name: "pending_issues", Table: "pending_issues", Label: "pendencias",
		Columns: []Column{
			{"title", "Título"}, {"description", "Descrição"},
			{"kanban_column_id", "Coluna"}, {"assignee", "Responsável"},
			{"priority", "Prioridade"}, {"due_date", "Prazo"}, {"position", "Posição"},
		},
		SearchColumns: []string{"title", "description", "assignee"},
	},
}

var byName = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		m[d.Name] = d
	}
	return m
}()

// Get returns the descriptor for a module route name.
func Get(name string) (Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}

// All returns every module descriptor in declaration order.
func All() []Descriptor {
	return descriptors
}

package domain

// ---------------- Operadores ----------------

type Operator string

const (
	OpEq     Operator = "="
	OpNeq    Operator = "<>"
	OpGt     Operator = ">"
	OpGte    Operator = ">="
	OpLt     Operator = "<"
	OpLte    Operator = "<="
	OpLike   Operator = "LIKE"
	OpILike  Operator = "ILIKE"
	OpIsNull Operator = "IS NULL"
)

type LogicalOperator string

const (
	OpAnd LogicalOperator = "AND"
	OpOr  LogicalOperator = "OR"
)

// Criterion describe una condición neutral de filtrado. Value se ignora con OpIsNull.
type Criterion struct {
	Field string
	Op    Operator
	Value any
}

// Criteria permite transformar filtros a condiciones neutrales
type Criteria interface {
	ToConditions() []Criterion
}

// ToConditions permite usar un Criterion suelto como Criteria.
func (c Criterion) ToConditions() []Criterion {
	return []Criterion{c}
}

// ---------------- Constructores ----------------

func FieldEquals(field string, value any) Criterion {
	return Criterion{Field: field, Op: OpEq, Value: value}
}

// FieldContains filtra por subcadena sin distinguir mayúsculas.
func FieldContains(field, fragment string) Criterion {
	return Criterion{Field: field, Op: OpILike, Value: "%" + fragment + "%"}
}

// NotDeleted excluye las entidades con borrado lógico.
func NotDeleted() Criterion {
	return Criterion{Field: "deleted_at", Op: OpIsNull}
}

// ---------------- Composite Criteria ----------------

type CompositeCriteria struct {
	Operator  LogicalOperator
	Criterias []Criteria
}

func (c CompositeCriteria) ToConditions() []Criterion {
	var all []Criterion
	for _, crit := range c.Criterias {
		if crit == nil {
			continue
		}
		all = append(all, crit.ToConditions()...)
	}
	return all
}

// And crea un CompositeCriteria con operador AND
func And(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpAnd, Criterias: criterias}
}

// Or crea un CompositeCriteria con operador OR
func Or(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpOr, Criterias: criterias}
}

// JoinOperator devuelve el operador con el que unir las condiciones planas de c.
// Solo un CompositeCriteria con OR cambia el AND por defecto.
func JoinOperator(c Criteria) LogicalOperator {
	if cc, ok := c.(CompositeCriteria); ok && cc.Operator == OpOr {
		return OpOr
	}
	return OpAnd
}

package scylla

import (
	"fmt"
	"strings"

	"userstore/domain/user"
)

// Statements builds the CQL text and bound-value lists for every user
// operation. The keyspace-qualified table name is fixed at construction and
// never changes afterwards. Every user-supplied value travels as a bound
// parameter, including the id predicate.
type Statements struct {
	table string
}

// NewStatements binds a statement builder to a keyspace and table.
func NewStatements(keyspace, table string) Statements {
	return Statements{table: fmt.Sprintf("%s.%s", keyspace, table)}
}

// SelectAll returns the full-table projection statement. No parameters.
func (s Statements) SelectAll() string {
	return fmt.Sprintf("SELECT id, name, email FROM %s", s.table)
}

// Insert returns the row-insert statement. Bound values: id, name, email.
func (s Statements) Insert() string {
	return fmt.Sprintf("INSERT INTO %s (id, name, email) VALUES (?, ?, ?)", s.table)
}

// SelectByID returns the primary-key lookup statement. Bound values: id.
func (s Statements) SelectByID() string {
	return fmt.Sprintf("SELECT id, name, email FROM %s WHERE id = ?", s.table)
}

// DeleteByID returns the row-delete statement. Bound values: id.
func (s Statements) DeleteByID() string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.table)
}

// Update assembles a SET clause from the fields present in req, in canonical
// order (name before email) so the statement shape is deterministic for a
// given payload. The id predicate is the final bound value. ok is false when
// the payload carries no fields at all; callers must then skip execution
// instead of sending a dangling SET clause to the store.
func (s Statements) Update(id string, req user.UpdateUserRequest) (stmt string, values []interface{}, ok bool) {
	assignments := make([]string, 0, 2)
	values = make([]interface{}, 0, 3)

	if req.Name != nil {
		assignments = append(assignments, "name = ?")
		values = append(values, *req.Name)
	}
	if req.Email != nil {
		assignments = append(assignments, "email = ?")
		values = append(values, *req.Email)
	}

	if len(assignments) == 0 {
		return "", nil, false
	}

	stmt = fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", s.table, strings.Join(assignments, ", "))
	values = append(values, id)
	return stmt, values, true
}

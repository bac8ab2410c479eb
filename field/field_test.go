package field_test

import (
	"testing"

	"github.com/arllen133/userstore/clause"
	"github.com/arllen133/userstore/field"
)

func TestStringField(t *testing.T) {
	name := field.String{}.WithColumn("name")

	// Test Eq
	expr := name.Eq("alice")
	sql, args, _ := expr.Build()
	if sql != "name = ?" {
		t.Errorf("Expected 'name = ?', got '%s'", sql)
	}
	if len(args) != 1 || args[0] != "alice" {
		t.Errorf("Expected args ['alice'], got %v", args)
	}

	// Test Neq
	sql, _, _ = name.Neq("bob").Build()
	if sql != "name <> ?" {
		t.Errorf("Expected 'name <> ?', got '%s'", sql)
	}
}

func TestNumberField(t *testing.T) {
	age := field.Number[int]{}.WithColumn("age")

	// Test Gte
	sql, args, _ := age.Gte(18).Build()
	if sql != "age >= ?" {
		t.Errorf("Expected 'age >= ?', got '%s'", sql)
	}
	if len(args) != 1 || args[0] != 18 {
		t.Errorf("Expected args [18], got %v", args)
	}

	// Test Lt
	sql, _, _ = age.Lt(40).Build()
	if sql != "age < ?" {
		t.Errorf("Expected 'age < ?', got '%s'", sql)
	}

	// Test Between
	sql, args, _ = age.Between(18, 65).Build()
	expected := "(age >= ?) AND (age <= ?)"
	if sql != expected {
		t.Errorf("Expected '%s', got '%s'", expected, sql)
	}
	if len(args) != 2 || args[0] != 18 || args[1] != 65 {
		t.Errorf("Expected args [18, 65], got %v", args)
	}
}

func TestIDField(t *testing.T) {
	id := field.Field{}.WithColumn("_id")

	sql, args, _ := id.Eq("65a1b2c3d4e5f60718293a4b").Build()
	if sql != "_id = ?" {
		t.Errorf("Expected '_id = ?', got '%s'", sql)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 arg, got %v", args)
	}
	if id.ColumnName() != "_id" {
		t.Errorf("Expected column '_id', got '%s'", id.ColumnName())
	}
}

func TestComplexExpression(t *testing.T) {
	age := field.Number[int]{}.WithColumn("age")
	name := field.String{}.WithColumn("name")

	// (age >= 18 AND name = 'Alice') OR name = 'Bob'
	expr := clause.Or{
		clause.And{
			age.Gte(18),
			name.Eq("Alice"),
		},
		name.Eq("Bob"),
	}

	sql, args, _ := expr.Build()

	expected := "((age >= ?) AND (name = ?)) OR (name = ?)"
	if sql != expected {
		t.Errorf("Expected '%s', got '%s'", expected, sql)
	}
	if len(args) != 3 || args[0] != 18 || args[1] != "Alice" || args[2] != "Bob" {
		t.Errorf("Args mismatch, got %v", args)
	}
}

func TestUpdates(t *testing.T) {
	email := field.String{}.WithColumn("email")
	age := field.Number[int]{}.WithColumn("age")

	sql, args, _ := email.Set("new@example.com").Build()
	if sql != "email = ?" {
		t.Errorf("Expected 'email = ?', got '%s'", sql)
	}
	if len(args) != 1 || args[0] != "new@example.com" {
		t.Errorf("Expected args ['new@example.com'], got %v", args)
	}

	inc := age.Inc(5)
	sql, args, _ = inc.Build()
	if sql != "age = age + ?" {
		t.Errorf("Expected 'age = age + ?', got '%s'", sql)
	}
	if len(args) != 1 || args[0] != 5 {
		t.Errorf("Expected args [5], got %v", args)
	}
	if inc.Target().Name != "age" {
		t.Errorf("Expected target 'age', got '%s'", inc.Target().Name)
	}
}

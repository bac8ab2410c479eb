package userstore

import (
	"fmt"

	"github.com/arllen133/userstore/field"
)

// User is the only record type: a flat document in a single collection.
// Name and Email carry no uniqueness constraint.
type User struct {
	ID    ID     `bson:"_id,omitempty" db:"_id"`
	Name  string `bson:"name" db:"name"`
	Email string `bson:"email" db:"email"`
	Age   int    `bson:"age" db:"age"`
}

func (u User) String() string {
	return fmt.Sprintf("{_id: %s, name: %s, email: %s, age: %d}", u.ID, u.Name, u.Email, u.Age)
}

// Users holds the typed field descriptors of User.
var Users = struct {
	ID    field.Field
	Name  field.String
	Email field.String
	Age   field.Number[int]
}{
	ID:    field.Field{}.WithColumn("_id"),
	Name:  field.String{}.WithColumn("name"),
	Email: field.String{}.WithColumn("email"),
	Age:   field.Number[int]{}.WithColumn("age"),
}

type userSchema struct{}

func (userSchema) TableName() string { return "users" }

func (userSchema) SelectColumns() []string {
	return []string{"_id", "name", "email", "age"}
}

func (userSchema) InsertRow(u *User) ([]string, []any) {
	return []string{"_id", "name", "email", "age"}, []any{u.ID, u.Name, u.Email, u.Age}
}

func (userSchema) SetID(u *User, id ID) { u.ID = id }

func init() {
	RegisterSchema[User](userSchema{})
}

func (userSchema) ColumnDefs() []string {
	return []string{
		"_id TEXT PRIMARY KEY",
		"name TEXT NOT NULL",
		"email TEXT NOT NULL",
		"age INTEGER NOT NULL",
	}
}

package ir

// Value is an SSA value: an instruction result, a constant, a global
// variable, or a metadata wrapper.
//
// The user relation is non-owning and navigable in both directions: a
// value lists the instructions that reference it, and instructions
// list their operands. Use lists hold one entry per use occurrence.
type Value interface {
	Type() *Type
	Name() string

	// Users returns the instructions currently using this value.
	// Do not modify the returned slice.
	Users() []*Instruction

	addUser(u *Instruction)
	removeUser(u *Instruction)
}

type valueBase struct {
	typ   *Type
	name  string
	users []*Instruction
}

func (v *valueBase) Type() *Type          { return v.typ }
func (v *valueBase) Name() string         { return v.name }
func (v *valueBase) Users() []*Instruction { return v.users }

func (v *valueBase) addUser(u *Instruction) {
	v.users = append(v.users, u)
}

func (v *valueBase) removeUser(u *Instruction) {
	for i, cand := range v.users {
		if cand == u {
			v.users = append(v.users[:i], v.users[i+1:]...)
			return
		}
	}
}

// ReplaceAllUses rewrites every use of oldVal to newVal. Debug-value
// bindings are metadata users and are not affected; migrate those with
// dxutil.MigrateDebugValue.
func ReplaceAllUses(oldVal, newVal Value) {
	users := append([]*Instruction(nil), oldVal.Users()...)
	for _, u := range users {
		for idx, op := range u.operands {
			if op == oldVal {
				u.SetOperand(idx, newVal)
			}
		}
	}
}

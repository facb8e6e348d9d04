package family

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/foundry/core/factory"
)

type engine interface{ Start() string }
type wheel interface{ Size() int }

type v8 struct{}

func (v8) Start() string { return "vroom" }

type wheel18 struct{}

func (wheel18) Size() int { return 18 }

var (
	roleEngine = NewRole[engine]("engine")
	roleWheel  = NewRole[wheel]("wheel")
	carSchema  = MustSchema("car", roleEngine, roleWheel)
)

func TestNewSchema_Errors(t *testing.T) {
	_, err := NewSchema("empty")
	assert.ErrorIs(t, err, ErrEmptySchema)

	_, err = NewSchema("dup", roleEngine, NewRole[int]("engine"))
	assert.ErrorIs(t, err, ErrDuplicateRole)

	_, err = NewSchema("blank", NewRole[int](" "))
	assert.ErrorIs(t, err, ErrRoleName)

	_, err = NewSchema("padded", NewRole[int](" hero "))
	assert.ErrorIs(t, err, ErrRoleName)

	assert.Panics(t, func() { MustSchema("empty") })
}

func TestSchema_RolesIsACopy(t *testing.T) {
	roles := carSchema.Roles()
	roles[0] = "mutated"
	assert.Equal(t, []string{"engine", "wheel"}, carSchema.Roles())
	assert.True(t, carSchema.Declares("wheel"))
	assert.False(t, carSchema.Declares("mutated"))
}

func TestNew_MakeTyped(t *testing.T) {
	f, err := New("sports", carSchema,
		Bind(roleEngine, func() (engine, error) { return v8{}, nil }),
		Bind(roleWheel, func() (wheel, error) { return wheel18{}, nil }),
	)
	require.NoError(t, err)
	assert.Equal(t, "sports", f.Name())
	assert.Same(t, carSchema, f.Schema())

	e, err := Make(f, roleEngine)
	require.NoError(t, err)
	assert.Equal(t, "vroom", e.Start())

	w, err := Make(f, roleWheel)
	require.NoError(t, err)
	assert.Equal(t, 18, w.Size())
}

/*
TestNew_Unbound checks completeness validation.

	Cases:
	- missing role fails with UnboundRole naming the role
	- no producer of the bound roles runs during validation
	- nil producer counts as unbound
*/
func TestNew_Unbound(t *testing.T) {
	invoked := 0
	_, err := New("half", carSchema,
		Bind(roleEngine, func() (engine, error) { invoked++; return v8{}, nil }),
	)
	require.ErrorIs(t, err, factory.ErrUnboundRole)
	var unbound *factory.UnboundRoleError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "half", unbound.Family)
	assert.Equal(t, "wheel", unbound.Role)
	assert.Zero(t, invoked)

	_, err = New("nil", carSchema,
		Bind(roleEngine, nil),
		Bind(roleWheel, func() (wheel, error) { return wheel18{}, nil }),
	)
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "engine", unbound.Role)

	_, err = New("none", carSchema)
	require.ErrorIs(t, err, factory.ErrUnboundRole)
	assert.Contains(t, err.Error(), "engine")
	assert.Contains(t, err.Error(), "wheel")
}

func TestNew_BindingErrors(t *testing.T) {
	ok := Bind(roleEngine, func() (engine, error) { return v8{}, nil })
	w := Bind(roleWheel, func() (wheel, error) { return wheel18{}, nil })

	_, err := New("extra", carSchema, ok, w, Bind(NewRole[string]("spoiler"), func() (string, error) { return "", nil }))
	assert.ErrorIs(t, err, ErrUndeclaredRole)

	_, err = New("twice", carSchema, ok, ok, w)
	assert.ErrorIs(t, err, ErrDuplicateBinding)

	_, err = New("nil-then-real", carSchema, Bind[engine](roleEngine, nil), ok, w)
	assert.ErrorIs(t, err, ErrDuplicateBinding)

	_, err = New("noschema", nil, ok)
	assert.ErrorIs(t, err, ErrSchemaRequired)
}

func TestMake_Errors(t *testing.T) {
	cause := errors.New("out of stock")
	f, err := New("broken", carSchema,
		Bind(roleEngine, func() (engine, error) { return nil, cause }),
		Bind(roleWheel, func() (wheel, error) { return wheel18{}, nil }),
	)
	require.NoError(t, err)

	_, err = Make(f, roleEngine)
	require.ErrorIs(t, err, factory.ErrProducerFailure)
	require.ErrorIs(t, err, cause)
	var perr *factory.ProducerError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "broken", perr.Scope)
	assert.Equal(t, "engine", perr.Key)

	_, err = f.Make("spoiler")
	assert.ErrorIs(t, err, factory.ErrUnboundRole)

	_, err = Make(f, NewRole[string]("wheel"))
	assert.ErrorIs(t, err, ErrRoleType)
}

func TestCatalog_Select(t *testing.T) {
	cat := NewCatalog(carSchema)
	built := 0
	require.NoError(t, cat.Register("sports", func(conf map[string]any) (*Factory, error) {
		built++
		var s struct {
			Wheels int `json:"wheels"`
		}
		if err := factory.Decode(conf, &s); err != nil {
			return nil, err
		}
		return New("sports", carSchema,
			Bind(roleEngine, func() (engine, error) { return v8{}, nil }),
			Bind(roleWheel, func() (wheel, error) { return wheel18{}, nil }),
		)
	}))
	require.NoError(t, cat.Register("kit", func(map[string]any) (*Factory, error) {
		return New("kit", carSchema, Bind(roleEngine, func() (engine, error) { return v8{}, nil }))
	}))

	assert.Equal(t, []string{"sports", "kit"}, cat.Names())

	f, err := cat.Select("sports", map[string]any{"wheels": 4})
	require.NoError(t, err)
	assert.Equal(t, "sports", f.Name())
	assert.Equal(t, 1, built)

	_, err = cat.Select("tractor", nil)
	require.ErrorIs(t, err, factory.ErrUnsupportedDiscriminator)
	var unsupported *factory.UnsupportedDiscriminatorError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "car", unsupported.Registry)

	_, err = cat.Select("kit", nil)
	assert.ErrorIs(t, err, factory.ErrProducerFailure)
	assert.ErrorIs(t, err, factory.ErrUnboundRole)

	err = cat.Register("sports", func(map[string]any) (*Factory, error) { return nil, nil })
	assert.ErrorIs(t, err, factory.ErrDuplicateDiscriminator)
}

func TestCatalog_SchemaMismatch(t *testing.T) {
	other := MustSchema("bike", roleWheel)
	cat := NewCatalog(carSchema)
	require.NoError(t, cat.Register("bmx", func(map[string]any) (*Factory, error) {
		return New("bmx", other, Bind(roleWheel, func() (wheel, error) { return wheel18{}, nil }))
	}))
	_, err := cat.Select("bmx", nil)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.ErrorIs(t, err, factory.ErrProducerFailure)
}

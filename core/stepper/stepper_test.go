package stepper

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func newTestEngine(t *testing.T, submit SubmitFunc, steps ...Step) *Engine {
	t.Helper()
	if submit == nil {
		submit = func(Values) error { return nil }
	}
	eng, err := New(validator.New(), nil, submit, steps...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return eng
}

func twoSteps() []Step {
	return []Step{
		{Name: "identity", Rules: Rules{"first_name": "required", "email": "required,email"}},
		{Name: "contact", Rules: Rules{"phone": "required,min=7"}},
	}
}

func TestEngine_nextBlocksOnInvalidStep(t *testing.T) {
	eng := newTestEngine(t, nil, twoSteps()...)

	eng.Set("first_name", "Awa")
	// email missing
	done, err := eng.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	assert.False(t, done)
	assert.Equal(t, 1, eng.Current())
	assert.Contains(t, eng.Errors(), "email")

	eng.Set("email", "awa@test.cd")
	_, err = eng.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	assert.Equal(t, 2, eng.Current())
	assert.True(t, eng.Valid())
}

func TestEngine_previousAlwaysSucceedsAndKeepsValues(t *testing.T) {
	eng := newTestEngine(t, nil, twoSteps()...)

	eng.SetAll(Values{"first_name": "Awa", "email": "awa@test.cd"})
	if _, err := eng.Next(); err != nil {
		t.Fatalf("Next() failed: %v", err)
	}

	// step 2 is invalid; Previous must still be allowed
	eng.Set("phone", "123")
	_, _ = eng.Next()
	assert.Equal(t, 2, eng.Current())
	assert.Contains(t, eng.Errors(), "phone")

	eng.Previous()
	assert.Equal(t, 1, eng.Current())
	assert.True(t, eng.Valid(), "error state must reset on step change")
	assert.Equal(t, "Awa", eng.Values()["first_name"])
	assert.Equal(t, "123", eng.Values()["phone"], "values must never be dropped")

	// Previous at step 1 clamps
	eng.Previous()
	assert.Equal(t, 1, eng.Current())
}

func TestEngine_conditionalRules(t *testing.T) {
	steps := []Step{
		{
			Name:  "class",
			Rules: Rules{"class": "required"},
			ConditionalRules: func(vals Values) Rules {
				// upper classes pick a group and 1-6 subjects
				if class, _ := vals["class"].(string); class == "9" || class == "10" {
					return Rules{
						"group":    "required",
						"subjects": "required,min=1,max=6",
					}
				}
				return nil
			},
		},
		{Name: "review", Rules: Rules{}},
	}

	t.Run("lower class needs no group", func(t *testing.T) {
		eng := newTestEngine(t, nil, steps...)
		eng.Set("class", "5")
		_, err := eng.Next()
		if err != nil {
			t.Fatalf("Next() failed: %v", err)
		}
		assert.Equal(t, 2, eng.Current())
	})

	t.Run("upper class requires group and subjects", func(t *testing.T) {
		eng := newTestEngine(t, nil, steps...)
		eng.Set("class", "9")
		_, _ = eng.Next()
		assert.Equal(t, 1, eng.Current())
		assert.Contains(t, eng.Errors(), "group")
		assert.Contains(t, eng.Errors(), "subjects")

		eng.Set("group", "science")
		eng.Set("subjects", []string{"physics", "chemistry"})
		_, err := eng.Next()
		if err != nil {
			t.Fatalf("Next() failed: %v", err)
		}
		assert.Equal(t, 2, eng.Current())
	})

	t.Run("too many subjects rejected", func(t *testing.T) {
		eng := newTestEngine(t, nil, steps...)
		eng.SetAll(Values{
			"class":    "10",
			"group":    "arts",
			"subjects": []string{"a", "b", "c", "d", "e", "f", "g"},
		})
		_, _ = eng.Next()
		assert.Equal(t, 1, eng.Current())
		assert.Contains(t, eng.Errors(), "subjects")
	})
}

func TestEngine_finalStepSubmits(t *testing.T) {
	var submitted Values
	eng := newTestEngine(t, func(vals Values) error {
		submitted = vals
		return nil
	}, twoSteps()...)

	eng.SetAll(Values{"first_name": "Awa", "email": "awa@test.cd", "phone": "0991234567"})
	done, err := eng.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	assert.False(t, done)

	done, err = eng.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	assert.True(t, done)
	assert.Equal(t, 2, eng.Current(), "index never exceeds N")
	assert.Equal(t, "Awa", submitted["first_name"])
	assert.Equal(t, "0991234567", submitted["phone"])
}

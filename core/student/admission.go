package student

import (
	"github.com/eduspark/eduspark/core/stepper"
)

// Classes whose admission requires picking a group and 1-6 elective
// subjects.
var groupedClasses = map[string]bool{
	"9":  true,
	"10": true,
}

func GroupRequired(className string) bool {
	return groupedClasses[className]
}

// AdmissionSteps is the admission wizard configuration: three steps, each
// validating only its own fields, with the group/subjects requirement
// activated by the chosen class.
func AdmissionSteps() []stepper.Step {
	return []stepper.Step{
		{
			Name: "personal",
			Rules: stepper.Rules{
				"first_name":    "required",
				"last_name":     "required",
				"gender":        "required,oneof=male female other",
				"date_of_birth": "required,datetime=2006-01-02",
			},
		},
		{
			Name: "guardian",
			Rules: stepper.Rules{
				"guardian_name":  "required",
				"guardian_phone": "required,phone_",
			},
		},
		{
			Name: "academic",
			Rules: stepper.Rules{
				"class_name": "required",
			},
			ConditionalRules: func(vals stepper.Values) stepper.Rules {
				if class, _ := vals["class_name"].(string); GroupRequired(class) {
					return stepper.Rules{
						"group":    "required",
						"subjects": "required,min=1,max=6",
					}
				}
				return nil
			},
		},
	}
}

// FromValues builds a NewStudent from the wizard's aggregated value map.
func FromValues(vals stepper.Values) NewStudent {
	str := func(field string) string {
		s, _ := vals[field].(string)
		return s
	}
	ns := NewStudent{
		FirstName:     str("first_name"),
		LastName:      str("last_name"),
		Gender:        str("gender"),
		DateOfBirth:   str("date_of_birth"),
		GuardianName:  str("guardian_name"),
		GuardianPhone: str("guardian_phone"),
		Email:         str("email"),
		ClassName:     str("class_name"),
		Group:         str("group"),
	}
	switch subjects := vals["subjects"].(type) {
	case []string:
		ns.Subjects = subjects
	case []interface{}: // decoded JSON arrays
		for _, s := range subjects {
			if sub, ok := s.(string); ok {
				ns.Subjects = append(ns.Subjects, sub)
			}
		}
	}
	return ns
}

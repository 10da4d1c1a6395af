package form

import (
	"fmt"
	"strings"
)

// FormType is a record signature as the game stores it.
type FormType int

const (
	FormTypeNone FormType = iota
	FormTypeLVLI          // leveled item
	FormTypeLVLN          // leveled actor
	FormTypeLVSP          // leveled spell
	FormTypeFLST          // form ID list
	FormTypeGLOB
	FormTypeWEAP
	FormTypeARMO
	FormTypeAMMO
	FormTypeMISC
	FormTypeALCH
	FormTypeBOOK
	FormTypeNPC
	FormTypeSPEL
	FormTypeKYWD
	FormTypeOMOD
	FormTypeCONT
)

var formTypeNames = [...]string{
	FormTypeNone: "NONE",
	FormTypeLVLI: "LVLI",
	FormTypeLVLN: "LVLN",
	FormTypeLVSP: "LVSP",
	FormTypeFLST: "FLST",
	FormTypeGLOB: "GLOB",
	FormTypeWEAP: "WEAP",
	FormTypeARMO: "ARMO",
	FormTypeAMMO: "AMMO",
	FormTypeMISC: "MISC",
	FormTypeALCH: "ALCH",
	FormTypeBOOK: "BOOK",
	FormTypeNPC:  "NPC_",
	FormTypeSPEL: "SPEL",
	FormTypeKYWD: "KYWD",
	FormTypeOMOD: "OMOD",
	FormTypeCONT: "CONT",
}

var formTypeValue = func() map[string]FormType {
	m := make(map[string]FormType, len(formTypeNames))
	for i, n := range formTypeNames {
		m[n] = FormType(i)
	}
	return m
}()

// FormTypeNames returns list of known signatures.
func FormTypeNames() []string {
	names := make([]string, 0, len(formTypeNames)-1)
	for _, n := range formTypeNames[1:] {
		names = append(names, n)
	}
	return names
}

// ParseFormType converts signature to FormType, case does not matter.
func ParseFormType(name string) (FormType, error) {
	if t, ok := formTypeValue[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return FormTypeNone, fmt.Errorf("%s is not a valid FormType, try [%s]", name, strings.Join(FormTypeNames(), ", "))
}

func (t FormType) String() string {
	if t >= 0 && int(t) < len(formTypeNames) {
		return formTypeNames[t]
	}
	return fmt.Sprintf("FormType(%d)", int(t))
}

// IsLeveled is true for the three signatures sharing leveled list layout.
func (t FormType) IsLeveled() bool {
	return t == FormTypeLVLI || t == FormTypeLVLN || t == FormTypeLVSP
}

func (t FormType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *FormType) UnmarshalText(text []byte) error {
	v, err := ParseFormType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

package handler

import (
    "github.com/gin-gonic/gin/binding"
    "github.com/go-playground/validator/v10"
)

var skillLevels = map[string]struct{}{
    "beginner":     {},
    "intermediate": {},
    "advanced":     {},
}

// RegisterValidators 注册自定义 binding 规则（skill_level 枚举）
func RegisterValidators() error {
    v, ok := binding.Validator.Engine().(*validator.Validate)
    if !ok {
        return nil
    }
    return v.RegisterValidation("skill_level", func(fl validator.FieldLevel) bool {
        _, ok := skillLevels[fl.Field().String()]
        return ok
    })
}

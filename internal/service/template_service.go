// internal/service/template_service.go
package service

import (
    "strings"
)

// RenderTemplate substitutes {placeholder} tokens in notification
// templates. Empty values render as N/A so a summary line never shows
// a bare hole where a campaign name or status should be.
func RenderTemplate(template string, data map[string]string) string {
    result := template
    for k, v := range data {
        if v == "" {
            v = "N/A"
        }
        result = strings.ReplaceAll(result, "{"+k+"}", v)
    }
    return result
}

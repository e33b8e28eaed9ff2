// Package docs registers the OpenAPI description served on /swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/stats/weekly": {
            "get": {
                "description": "Aggregates habits, sleep, exercise and meals over the Monday–Sunday week containing date.",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Weekly aggregate",
                "parameters": [
                    {"type": "string", "description": "Any day of the week (YYYY-MM-DD), defaults to today", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WeeklyStats"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/stats/trends": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Week over week trends",
                "parameters": [
                    {"type": "string", "description": "Any day of the current week (YYYY-MM-DD)", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TrendData"}}
                }
            }
        },
        "/stats/streak": {
            "get": {
                "description": "Current streak computed on demand plus the latest background summary.",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Daily activity streak",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.streakResponse"}}
                }
            }
        },
        "/insights": {
            "get": {
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Current insights state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InsightsState"}}
                }
            },
            "delete": {
                "tags": ["insights"],
                "summary": "Clear every artifact",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/insights/error": {
            "delete": {
                "tags": ["insights"],
                "summary": "Clear the last error",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/insights/{kind}": {
            "post": {
                "description": "Failures are reported in the error field of the returned state.",
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Fetch one artifact",
                "parameters": [
                    {"type": "string", "description": "coaching, habits, sleep, exercise, mood or nutrition", "name": "kind", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InsightsState"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/analysis/food": {
            "post": {
                "description": "Estimates foods and calories. With log=true the result is stored as a meal.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Analyze a food photo",
                "parameters": [
                    {"type": "file", "description": "JPEG or PNG photo", "name": "image", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Store the result as a meal", "name": "log", "in": "formData"},
                    {"type": "string", "description": "Meal date (YYYY-MM-DD), defaults to today", "name": "date", "in": "formData"},
                    {"type": "string", "description": "breakfast, lunch, dinner or snack", "name": "meal_type", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "504": {"description": "Gateway Timeout", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/analysis/journal": {
            "post": {
                "description": "With save=true the transcription is stored as a journal entry.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Transcribe a handwritten journal page",
                "parameters": [
                    {"type": "file", "description": "JPEG or PNG photo", "name": "image", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Store the text as a journal entry", "name": "save", "in": "formData"},
                    {"type": "string", "description": "Entry date (YYYY-MM-DD), defaults to today", "name": "date", "in": "formData"},
                    {"type": "integer", "description": "Mood from 1 to 5", "name": "mood", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/habits": {
            "get": {
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "List active habits",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Habit"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Create a habit",
                "parameters": [
                    {"description": "Habit", "name": "habit", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.createHabitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Habit"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/habits/{id}": {
            "put": {
                "description": "Empty fields keep their current value.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Update a habit",
                "parameters": [
                    {"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "habit", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.updateHabitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Habit"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["habits"],
                "summary": "Archive a habit",
                "parameters": [
                    {"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/habits/{id}/completions": {
            "post": {
                "description": "completed defaults to true.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Record a habit completion",
                "parameters": [
                    {"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true},
                    {"description": "Completion", "name": "completion", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.completeHabitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.HabitCompletion"}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sleep": {
            "get": {
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "List sleep entries",
                "parameters": [
                    {"type": "string", "description": "First day (YYYY-MM-DD), defaults to this Monday", "name": "start", "in": "query"},
                    {"type": "string", "description": "Last day (YYYY-MM-DD), defaults to this Sunday", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.SleepEntry"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Log a night of sleep",
                "parameters": [
                    {"description": "Sleep entry", "name": "entry", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.sleepRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.SleepEntry"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.WeeklyStats": {
            "type": "object",
            "properties": {
                "week_start": {"type": "string"},
                "week_end": {"type": "string"},
                "habits_completed": {"type": "integer"},
                "habits_total": {"type": "integer"},
                "habit_completion_rate": {"type": "number"},
                "avg_sleep_hours": {"type": "number"},
                "avg_sleep_quality": {"type": "number"},
                "total_exercise_minutes": {"type": "integer"},
                "avg_daily_calories": {"type": "number"},
                "days_tracked": {"type": "integer"}
            }
        },
        "domain.TrendData": {
            "type": "object",
            "properties": {
                "this_week": {"$ref": "#/definitions/domain.WeeklyStats"},
                "last_week": {"$ref": "#/definitions/domain.WeeklyStats"},
                "sleep_trend": {"type": "string", "enum": ["up", "down", "stable"]},
                "exercise_trend": {"type": "string", "enum": ["up", "down", "stable"]},
                "habit_trend": {"type": "string", "enum": ["up", "down", "stable"]}
            }
        },
        "domain.StreakSummary": {
            "type": "object",
            "properties": {
                "current": {"type": "integer"},
                "longest": {"type": "integer"},
                "computed_at": {"type": "string"}
            }
        },
        "http.streakResponse": {
            "type": "object",
            "properties": {
                "current": {"type": "integer"},
                "summary": {"$ref": "#/definitions/domain.StreakSummary"}
            }
        },
        "domain.InsightsState": {
            "type": "object",
            "properties": {
                "daily_coaching": {"type": "object"},
                "habit_suggestions": {"type": "array", "items": {"type": "object"}},
                "sleep_analysis": {"type": "object"},
                "exercise_recommendation": {"type": "object"},
                "mood_analysis": {"type": "object"},
                "nutrition_advice": {"type": "object"},
                "is_loading_coaching": {"type": "boolean"},
                "is_loading_suggestions": {"type": "boolean"},
                "is_loading_sleep": {"type": "boolean"},
                "is_loading_exercise": {"type": "boolean"},
                "is_loading_mood": {"type": "boolean"},
                "is_loading_nutrition": {"type": "boolean"},
                "error": {"type": "string"},
                "last_coaching_fetch": {"type": "integer"}
            }
        },
        "domain.Habit": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "color": {"type": "string"},
                "icon": {"type": "string"},
                "frequency": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "archived_at": {"type": "string"}
            }
        },
        "domain.HabitCompletion": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "habit_id": {"type": "string"},
                "date": {"type": "string"},
                "completed": {"type": "boolean"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "domain.SleepEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string"},
                "duration_minutes": {"type": "integer"},
                "quality": {"type": "integer"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "http.createHabitRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "color": {"type": "string"},
                "icon": {"type": "string"},
                "frequency": {"type": "string"}
            }
        },
        "http.updateHabitRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "color": {"type": "string"},
                "icon": {"type": "string"},
                "frequency": {"type": "string"}
            }
        },
        "http.completeHabitRequest": {
            "type": "object",
            "required": ["date"],
            "properties": {
                "date": {"type": "string"},
                "completed": {"type": "boolean"},
                "notes": {"type": "string"}
            }
        },
        "http.sleepRequest": {
            "type": "object",
            "required": ["date", "duration_minutes", "quality"],
            "properties": {
                "date": {"type": "string"},
                "duration_minutes": {"type": "integer"},
                "quality": {"type": "integer"},
                "notes": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Insights API",
	Description:      "Weekly health aggregates, streaks, trends and AI coaching.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

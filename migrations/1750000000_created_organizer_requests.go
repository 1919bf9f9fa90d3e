package migrations

import (
	"lummy/models"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("organizer_requests")

		statuses := make([]string, 0, len(models.OrganizerRequestStatuses))
		for _, st := range models.OrganizerRequestStatuses {
			statuses = append(statuses, string(st))
		}

		collection.Fields.Add(
			&core.TextField{Name: "full_name", Required: true, Max: 200},
			&core.EmailField{Name: "email", Required: true},
			&core.TextField{Name: "phone", Required: true, Max: 50},
			&core.TextField{Name: "address", Required: true, Max: 500},
			&core.TextField{Name: "website", Max: 300}, // url or social handle
			&core.TextField{Name: "organizer_type", Required: true, Max: 50},
			&core.JSONField{Name: "event_categories", MaxSize: 2000},
			&core.TextField{Name: "experience", Required: true, Max: 50},
			&core.TextField{Name: "estimated_events_per_year", Max: 50},
			&core.TextField{Name: "description", Required: true, Max: 5000},
			&core.TextField{Name: "previous_events", Max: 5000},
			&core.TextField{Name: "reference_contacts", Max: 2000},
			&core.TextField{Name: "estimated_budget", Required: true, Max: 50},
			&core.TextField{Name: "bank_name", Required: true, Max: 100},
			&core.TextField{Name: "account_number", Required: true, Max: 50},
			&core.TextField{Name: "account_holder", Required: true, Max: 200},
			&core.BoolField{Name: "agree_terms"},
			&core.BoolField{Name: "agree_privacy"},
			&core.BoolField{Name: "agree_fee"},
			&core.TextField{Name: "reference_code", Required: true, Max: 32},
			&core.SelectField{Name: "status", Required: true, MaxSelect: 1, Values: statuses},
			&core.TextField{Name: "review_note", Max: 2000},
			&core.DateField{Name: "submitted_at"},
			&core.DateField{Name: "updated_at"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_organizer_requests_reference_code", true, "reference_code", "")
		collection.AddIndex("idx_organizer_requests_status", false, "status", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("organizer_requests")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}

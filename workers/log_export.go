package workers

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"corpora/models"

	"github.com/jinzhu/gorm"
)

// StartLogExporter starts a loop that, at every midnight, exports the prior
// calendar day's audit logs to a dated CSV file under dir.
func StartLogExporter(db *gorm.DB, dir string) {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
				Add(24 * time.Hour)
			time.Sleep(time.Until(next))

			if _, err := ExportDailyLogs(db, dir, time.Now()); err != nil {
				log.Printf("log exporter: %v", err)
			}
		}
	}()
}

// ExportDailyLogs writes the logs of the calendar day before now to
// logs_<date>.csv inside dir and returns the file path.
func ExportDailyLogs(db *gorm.DB, dir string, now time.Time) (string, error) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.Add(-24 * time.Hour)

	var logs []models.Log
	if err := db.Where("datetime >= ? AND datetime < ?", start, end).
		Order("id asc").Find(&logs).Error; err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("logs_%s.csv", start.Format("2006-01-02")))

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"User", "Action", "Text Instance", "Updated_Field", "Action_Details", "DateTime"}); err != nil {
		return "", err
	}

	for _, entry := range logs {
		var user models.User
		username := fmt.Sprintf("%d", entry.UserID)
		if err := db.First(&user, entry.UserID).Error; err == nil {
			username = user.Username
		}

		var text models.Text
		textLabel := fmt.Sprintf("%d", entry.TextID)
		if err := db.First(&text, entry.TextID).Error; err == nil {
			textLabel = text.Label()
		}

		record := []string{
			username,
			entry.Action,
			textLabel,
			entry.UpdatedField,
			entry.ActionDetails,
			entry.Datetime.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	log.Printf("log exporter: %d logs exportados para %s", len(logs), path)
	return path, nil
}

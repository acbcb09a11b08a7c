package jobs

import (
	"log"

	"github.com/buddylink/backend/database"
)

// SweepOrphanMessages deletes messages whose chat no longer exists. The
// store enforces no foreign keys, so referential integrity between chats
// and messages is swept here on a schedule.
func SweepOrphanMessages() {
	log.Println("Running job: SweepOrphanMessages...")

	result := database.DB.Exec(
		"DELETE FROM messages WHERE chat_id NOT IN (SELECT id FROM chats)",
	)
	if result.Error != nil {
		log.Printf("Error sweeping orphaned messages: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Swept %d orphaned messages", result.RowsAffected)
	}
}

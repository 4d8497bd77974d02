package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the four ticket desk tables.  Table and column names
// follow the layout of the existing desktop database so both can share
// one instance.  Every foreign key cascades on delete.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS Cinemas (
		ID   INT NOT NULL AUTO_INCREMENT,
		Name VARCHAR(255) NOT NULL,
		City VARCHAR(255) NOT NULL,
		PRIMARY KEY (ID),
		UNIQUE KEY IX_Cinemas_Name (Name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS Movies (
		ID          INT NOT NULL AUTO_INCREMENT,
		Title       VARCHAR(255) NOT NULL,
		Runtime     SMALLINT NOT NULL,
		ReleaseDate DATE NOT NULL,
		PosterPath  VARCHAR(255) NOT NULL,
		PRIMARY KEY (ID)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS Screenings (
		ID       INT NOT NULL AUTO_INCREMENT,
		Time     TIME(0) NOT NULL,
		MovieID  INT NOT NULL,
		CinemaID INT NOT NULL,
		PRIMARY KEY (ID),
		KEY IX_Screenings_MovieID (MovieID),
		KEY IX_Screenings_CinemaID (CinemaID),
		CONSTRAINT FK_Screenings_Movies_MovieID FOREIGN KEY (MovieID) REFERENCES Movies (ID) ON DELETE CASCADE,
		CONSTRAINT FK_Screenings_Cinemas_CinemaID FOREIGN KEY (CinemaID) REFERENCES Cinemas (ID) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS Tickets (
		ID            INT NOT NULL AUTO_INCREMENT,
		TimePurchased DATETIME NOT NULL,
		ScreeningID   INT NOT NULL,
		PRIMARY KEY (ID),
		KEY IX_Tickets_ScreeningID (ScreeningID),
		CONSTRAINT FK_Tickets_Screenings_ScreeningID FOREIGN KEY (ScreeningID) REFERENCES Screenings (ID) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing tables.  Existing tables are left as they
// are, so running it against a seeded database is harmless.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

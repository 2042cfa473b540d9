package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/jointventurehq/partnerbooks/data"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a seeded PartnerBooks MariaDB testcontainer with the environment
variables from the .env file. The container stays up until interrupted.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load env file %s: %v", envFilename, err)
		}
	}

	ctx := context.Background()

	image := getEnv("DB_IMAGE", "mariadb:11")
	rootPassword := getEnv("DB_ROOT_PASSWORD", "root")
	dbName := getEnv("DB_DATABASE", "partnerbooks")

	tcpPort, err := nat.NewPort("tcp", getEnv("DB_PORT", "3306"))
	if err != nil {
		log.Fatalf("Failed to create DB port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": rootPassword,
				"MYSQL_ROOT_PASSWORD":   rootPassword,
				"MARIADB_DATABASE":      dbName,
				"MYSQL_DATABASE":        dbName,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start database container: %v", err)
	}

	host, _ := container.Host(ctx)
	mappedPort, _ := container.MappedPort(ctx, tcpPort)

	if err := initDatabase(host, mappedPort.Port(), rootPassword, dbName); err != nil {
		_ = container.Terminate(ctx)
		log.Fatalf("Failed to initialize database: %v", err)
	}

	log.Printf("MariaDB ready: DB_HOST=%s DB_PORT=%s DB_DATABASE=%s", host, mappedPort.Port(), dbName)
	log.Printf("Press Ctrl+C to terminate")

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Terminating container...")
	if err := container.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate container: %v", err)
	}
}

// initDatabase applies the embedded DDL statement by statement, waiting for
// the server to accept connections first.
func initDatabase(host, port, rootPassword, dbName string) error {
	dsn := fmt.Sprintf("root:%s@tcp(%s:%s)/%s?multiStatements=true", rootPassword, host, port, dbName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	deadline := time.Now().Add(60 * time.Second)
	for {
		if err = db.Ping(); err == nil {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("database did not become ready: %w", err)
		}
		time.Sleep(time.Second)
	}

	for _, script := range []string{data.InitdbMariaDBTables, data.InitdbMariaDBPrivileges} {
		for _, stmt := range strings.Split(script, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("DDL failed: %w\n%s", err, stmt)
			}
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

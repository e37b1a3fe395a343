package setup

import (
	"Staffline/internal/clock"
	"Staffline/internal/config"
	"Staffline/internal/database"
	"Staffline/internal/repositories"
	"Staffline/internal/repositories/memory"
	"Staffline/internal/repositories/postgres"
	redisRepositories "Staffline/internal/repositories/redis"
	"database/sql"
	"fmt"

	"github.com/The127/ioc"
	"github.com/redis/go-redis/v9"
)

// Repositories registers the employee store selected by c.Mode.
func Repositories(dc *ioc.DependencyCollection, c config.DatabaseConfig) error {
	switch c.Mode {
	case config.DatabaseModePostgres:
		return postgresRepositories(dc, c.Postgres)

	case config.DatabaseModeRedis:
		redisRepositoriesFor(dc, c.Redis)
		return nil

	case config.DatabaseModeMemory:
		ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) repositories.EmployeeRepository {
			return memory.NewEmployeeRepository(ioc.GetDependency[clock.Service](dp))
		})
		return nil

	default:
		panic("database mode missing or not supported")
	}
}

func postgresRepositories(dc *ioc.DependencyCollection, pc config.PostgresConfig) error {
	db, err := database.ConnectToDatabase(pc)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}

	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) *sql.DB {
		return db
	})
	ioc.RegisterCloseHandler(dc, func(db *sql.DB) error {
		return db.Close()
	})

	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) repositories.EmployeeRepository {
		return postgres.NewEmployeeRepository(
			ioc.GetDependency[*sql.DB](dp),
			ioc.GetDependency[clock.Service](dp),
		)
	})

	return nil
}

func redisRepositoriesFor(dc *ioc.DependencyCollection, rc config.RedisConfig) {
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) *redis.Client {
		return redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", rc.Host, rc.Port),
			Username: rc.Username,
			Password: rc.Password,
			DB:       rc.Database,
		})
	})
	ioc.RegisterCloseHandler(dc, func(client *redis.Client) error {
		return client.Close()
	})

	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) repositories.EmployeeRepository {
		return redisRepositories.NewEmployeeRepository(
			ioc.GetDependency[*redis.Client](dp),
			ioc.GetDependency[clock.Service](dp),
		)
	})
}

package setup

import (
	"Staffline/internal/clock"
	"Staffline/internal/config"
	"Staffline/internal/services"
	"Staffline/utils"
	"fmt"

	"github.com/The127/ioc"
)

func Services(dc *ioc.DependencyCollection, c config.Config) error {
	hasher, err := passwordHasher(c.Hashing.Algorithm)
	if err != nil {
		return err
	}

	templateService, err := services.NewTemplateService()
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) clock.Service {
		return clock.NewClockService()
	})
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) utils.PasswordHasher {
		return hasher
	})
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) services.CodeGenerator {
		return services.NewCodeGenerator()
	})
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) services.TemplateService {
		return templateService
	})
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) services.MailService {
		return services.NewMailService(c.Mail)
	})

	return nil
}

func passwordHasher(algorithm config.HashAlgorithm) (utils.PasswordHasher, error) {
	switch algorithm {
	case config.HashAlgorithmArgon2:
		hasher, err := utils.NewArgon2Hasher()
		if err != nil {
			return nil, fmt.Errorf("creating argon2 hasher: %w", err)
		}
		return hasher, nil

	case config.HashAlgorithmBcrypt:
		return utils.NewBcryptHasher(), nil

	default:
		return nil, fmt.Errorf("hash algorithm %q not supported", algorithm)
	}
}

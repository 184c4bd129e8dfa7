package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodie-app/foodie/internal/common"
	"github.com/foodie-app/foodie/internal/config"
	commonErrors "github.com/foodie-app/foodie/internal/errors"
	"github.com/foodie-app/foodie/internal/log"
	"github.com/foodie-app/foodie/internal/repository"
	inOtel "github.com/foodie-app/foodie/user/internal/otel"
	"github.com/foodie-app/foodie/user/pkg/request"
	"github.com/foodie-app/foodie/user/pkg/response"
)

const tokenLifetime = 30 * time.Minute

var ErrAddressNotFound = errors.New("address not found")

type UserService struct {
	queries *repository.Queries
	config  config.Application
}

func NewUserService(queries *repository.Queries, config config.Application) UserService {
	return UserService{queries: queries, config: config}
}

func (svc UserService) Register(
	c context.Context,
	param request.Register,
) (response.User, error) {
	c, span := inOtel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting user").Logger()
	logger.Info().Msg("inserting user")
	user, err := svc.queries.InsertUser(c, repository.InsertUserParams{
		ID:       uuid.New(),
		Name:     param.Name,
		Email:    param.Email,
		Password: string(hashed),
		Phone:    param.Phone,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting user with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Str(log.KeyUserID, user.ID.String()).Msg("inserted user")

	return user.Response(), nil
}

// Login verifies the credentials and issues a signed token. The token subject
// is the user id so downstream services can scope requests without another
// lookup.
func (svc UserService) Login(c context.Context, param request.Login) (string, error) {
	c, span := inOtel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Info().Msg("finding user by email")
	user, err := svc.queries.FindUserByEmail(c, param.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("user not found")
			return "", commonErrors.ErrUserNotFound
		}
		err = fmt.Errorf("failed finding user by email with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("found user by email")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password))
	if err != nil {
		commonErrors.HandleError(commonErrors.ErrPasswordMismatch, span)
		logger.Error().
			Err(commonErrors.ErrPasswordMismatch).
			Msg(commonErrors.ErrPasswordMismatch.Error())
		return "", commonErrors.ErrPasswordMismatch
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "signing token").Logger()
	logger.Info().Msg("signing token")
	now := time.Now()
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{common.AudienceUser},
			Issuer:    common.AppUserService,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	)
	signedToken, err := token.SignedString([]byte(svc.config.SecretKey))
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("signed token")

	return signedToken, nil
}

func (svc UserService) FindUserById(
	c context.Context,
	userId uuid.UUID,
) (response.User, error) {
	c, span := inOtel.Tracer.Start(c, "UserService FindUserById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUserById").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Info().Msg("finding user")
	user, err := svc.queries.FindUserById(c, userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("user not found")
			return response.User{}, commonErrors.ErrUserNotFound
		}
		err = fmt.Errorf("failed finding user with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("found user")

	return user.Response(), nil
}

func (svc UserService) AddAddress(
	c context.Context,
	userId uuid.UUID,
	param request.Address,
) (response.Address, error) {
	c, span := inOtel.Tracer.Start(c, "UserService AddAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService AddAddress").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting address").Logger()
	logger.Info().Msg("inserting address")
	address, err := svc.queries.InsertAddress(c, repository.InsertAddressParams{
		ID:         uuid.New(),
		UserID:     userId,
		Label:      param.Label,
		Street:     param.Street,
		City:       param.City,
		PostalCode: param.PostalCode,
		IsDefault:  param.IsDefault,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting address with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Address{}, err
	}
	logger.Info().Str(log.KeyAddressID, address.ID.String()).Msg("inserted address")

	if param.IsDefault {
		logger = logger.With().Str(log.KeyProcess, "promoting address to default").Logger()
		logger.Info().Msg("promoting address to default")
		if _, err := svc.queries.SetDefaultAddress(c, address.ID, userId); err != nil {
			err = fmt.Errorf("failed promoting address to default with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Address{}, err
		}
		logger.Info().Msg("promoted address to default")
	}

	return address.Response(), nil
}

func (svc UserService) FindAddresses(
	c context.Context,
	userId uuid.UUID,
) ([]response.Address, error) {
	c, span := inOtel.Tracer.Start(c, "UserService FindAddresses")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindAddresses").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding addresses").Logger()
	logger.Info().Msg("finding addresses")
	addresses, err := svc.queries.FindAddressesByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding addresses with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d addresses", len(addresses))

	responses := make([]response.Address, 0, len(addresses))
	for _, address := range addresses {
		responses = append(responses, address.Response())
	}
	return responses, nil
}

func (svc UserService) UpdateAddress(
	c context.Context,
	userId uuid.UUID,
	addressId uuid.UUID,
	param request.Address,
) (response.Address, error) {
	c, span := inOtel.Tracer.Start(c, "UserService UpdateAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateAddress").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyAddressID, addressId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "updating address").Logger()
	logger.Info().Msg("updating address")
	address, err := svc.queries.UpdateAddress(c, repository.UpdateAddressParams{
		ID:         addressId,
		UserID:     userId,
		Label:      param.Label,
		Street:     param.Street,
		City:       param.City,
		PostalCode: param.PostalCode,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("address not found")
			return response.Address{}, ErrAddressNotFound
		}
		err = fmt.Errorf("failed updating address with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Address{}, err
	}
	logger.Info().Msg("updated address")

	return address.Response(), nil
}

func (svc UserService) DeleteAddress(
	c context.Context,
	userId uuid.UUID,
	addressId uuid.UUID,
) error {
	c, span := inOtel.Tracer.Start(c, "UserService DeleteAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService DeleteAddress").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyAddressID, addressId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "deleting address").Logger()
	logger.Info().Msg("deleting address")
	deleted, err := svc.queries.DeleteAddress(c, addressId, userId)
	if err != nil {
		err = fmt.Errorf("failed deleting address with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if deleted == 0 {
		logger.Info().Msg("address not found")
		return ErrAddressNotFound
	}
	logger.Info().Msg("deleted address")

	return nil
}

func (svc UserService) SetDefaultAddress(
	c context.Context,
	userId uuid.UUID,
	addressId uuid.UUID,
) error {
	c, span := inOtel.Tracer.Start(c, "UserService SetDefaultAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService SetDefaultAddress").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyAddressID, addressId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "setting default address").Logger()
	logger.Info().Msg("setting default address")
	updated, err := svc.queries.SetDefaultAddress(c, addressId, userId)
	if err != nil {
		err = fmt.Errorf("failed setting default address with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if updated == 0 {
		logger.Info().Msg("address not found")
		return ErrAddressNotFound
	}
	logger.Info().Msg("set default address")

	return nil
}

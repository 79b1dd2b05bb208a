package deps

import (
	"context"
	"fmt"
	"postboard/internal/config"
	dl "postboard/internal/core/domain/logging"
	drl "postboard/internal/core/domain/rate_limiter"
	duow "postboard/internal/core/domain/unit_of_work"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services/captcha"
	uow "postboard/internal/db/unit_of_work"
	dbuser "postboard/internal/db/user"
	forgotpassword "postboard/internal/http/handlers/auth/forgot_password"
	"postboard/internal/implementations/email"
	eventpublisher "postboard/internal/implementations/event_publisher"
	"postboard/internal/implementations/logging"
	passwordhasher "postboard/internal/implementations/password_hasher"
	passwordresetcode "postboard/internal/implementations/password_reset_code"
	ratelimiter "postboard/internal/implementations/rate_limiter"
	recaptcha "postboard/internal/implementations/recaptcha"
	"postboard/internal/implementations/session"
	"postboard/internal/rabbitmq"
	accountevents "postboard/internal/rabbitmq/publishers/account_events"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork     duow.UnitOfWork
	UserRepository user.UserRepository

	RateLimiter drl.RateLimiter

	PasswordHasher              user.PasswordHasher
	SessionIssuer               user.SessionIssuer
	PasswordResetCodeGenerator  user.PasswordResetCodeGenerator
	PasswordResetCodeDigester   user.PasswordResetCodeDigester
	PasswordResetCodeSender     user.PasswordResetCodeSender
	PasswordResetCodeLookup     forgotpassword.PasswordResetCodeLookup
	PasswordChangedNoticeSender user.PasswordChangedNoticeSender
	EventPublisher              user.EventPublisher
	CaptchaValidator            captcha.CaptchaValidator
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	flushSentry := deps.initSentry()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.SessionIssuer = session.NewJWT(deps.Config.Secret, deps.Config.SessionTokenValidDuration, deps.Now)
	deps.PasswordResetCodeGenerator = passwordresetcode.NewGenerator()
	deps.PasswordResetCodeDigester = passwordresetcode.NewHMAC(deps.Config.Secret)
	deps.initEmailSenders()
	deps.CaptchaValidator = deps.initCaptchaValidator()

	closeAccountEventsPublisher := deps.initEventPublisher()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeAccountEventsPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initEmailSenders() {
	if deps.Config.IsTestMode {
		sender := email.NewTestModeSender(deps.Logger)
		deps.PasswordResetCodeSender = sender
		deps.PasswordResetCodeLookup = sender
		deps.PasswordChangedNoticeSender = sender
		return
	}

	sender := email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailPasswordResetCodeTemplate,
		deps.Config.PasswordResetCodeTTL,
		deps.Config.AwsEmailPasswordChangedNoticeTemplate,
	)
	deps.PasswordResetCodeSender = sender
	deps.PasswordChangedNoticeSender = sender
}

func (deps *Deps) initEventPublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	exchange := deps.Config.RabbitmqAccountEventsExchange
	queue := deps.Config.RabbitmqPasswordChangedQueue
	if err := rabbitmqChannel.DeclareTopology(
		exchange,
		queue,
		accountevents.RoutingKey(user.EventPasswordChanged),
	); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not declare RabbitMQ topology.",
			dl.Entry("err", err),
			dl.Entry("exchange", exchange),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.EventPublisher = eventpublisher.NewMulti(
		accountevents.NewRabbitMQ(deps.Logger, rabbitmqChannel, exchange),
		eventpublisher.NewSSE(deps.SseServer),
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down account events publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Account events publisher shut down.")
	}
}

func (deps *Deps) initCaptchaValidator() captcha.CaptchaValidator {
	if deps.Config.IsTestMode {
		return captcha.NewAllowAlwaysCaptchaValidator()
	}
	return recaptcha.New(
		deps.Logger,
		deps.Config.GoogleRecaptchaSecretKey,
		deps.Config.GoogleRecaptchaScoreThreshold,
		deps.Config.GoogleRecaptchaRequestTimeout,
	)
}

// initSentry must run right after initLogger, it wraps deps.Logger.
func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger = logging.WithSentry(deps.Logger, sentry.CurrentHub())
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}

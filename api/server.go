package api

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ThomasWeyssow/rewaard-api/api/controllers"
	"github.com/ThomasWeyssow/rewaard-api/api/transport"
	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/ThomasWeyssow/rewaard-api/workflow"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	// Create storage
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}

	dynamoClient := dynamodb.NewFromConfig(cfg)

	cycleStorage := &storage.DynamoCycleStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameCycles,
	}
	nominationStorage := &storage.DynamoNominationStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameNominations,
	}
	validationStorage := &storage.DynamoValidationStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameValidations,
	}
	winnerStorage := &storage.DynamoWinnerStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameWinners,
	}
	profileStorage := &storage.DynamoProfileStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameProfiles,
	}
	areaStorage := &storage.DynamoNominationAreaStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameAreas,
	}
	rewardStorage := &storage.DynamoRewardStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameRewards,
	}
	programStorage := &storage.DynamoRecognitionProgramStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNamePrograms,
	}
	recognitionStorage := &storage.DynamoRecognitionStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameRecognitions,
	}
	balanceStorage := &storage.DynamoPointsBalanceStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameBalances,
	}

	// Workflow engine
	cycleService := workflow.NewCycleService(cycleStorage)
	cycleService.ValidationWindow = time.Duration(s.config.ValidationWindowDays) * 24 * time.Hour

	nominationLedger := workflow.NewNominationLedger(nominationStorage, cycleService)
	validationLedger := workflow.NewValidationLedger(validationStorage, nominationStorage, cycleService)
	winnerResolver := workflow.NewWinnerResolver(cycleService, nominationStorage, validationStorage, winnerStorage)

	// The ledgers hold optimistic in-memory views; refetch when another
	// writer signals a change.
	feed := storage.NewMemoryChangeFeed()
	feed.Subscribe(func() {
		if err := nominationLedger.Refresh(context.Background()); err != nil {
			logging.Log.Errorf("failed to refresh nomination ledger: %v", err)
		}
		if err := validationLedger.Refresh(context.Background()); err != nil {
			logging.Log.Errorf("failed to refresh validation ledger: %v", err)
		}
	})

	//Register controllers
	nominationController := controllers.NewNominationController(nominationLedger, validationLedger, cycleService, profileStorage)
	nominationController.RegisterRoutes(r)
	validationController := controllers.NewValidationController(validationLedger, profileStorage)
	validationController.RegisterRoutes(r)
	cycleController := controllers.NewCycleController(cycleService, winnerResolver, winnerStorage)
	cycleController.RegisterRoutes(r)
	recognitionController := controllers.NewRecognitionController(programStorage, recognitionStorage, balanceStorage, profileStorage)
	recognitionController.RegisterRoutes(r)
	rewardController := controllers.NewRewardController(rewardStorage, programStorage, balanceStorage, profileStorage)
	rewardController.RegisterRoutes(r)
	areaMetaController := controllers.NewAreaMetaController(areaStorage)
	areaMetaController.RegisterRoutes(r)
	profileController := controllers.NewProfileController(profileStorage)
	profileController.RegisterRoutes(r)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}

// Configures CORS on the object-lake bucket. The lake is written
// server-side only; the single browser-facing surface is the presigned GET
// URL handed to operators, so the rules allow reads and nothing else.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("../.env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	endpoint := os.Getenv("S3_ENDPOINT")
	bucket := os.Getenv("S3_BUCKET")
	region := os.Getenv("S3_REGION")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")

	if endpoint == "" || bucket == "" || accessKey == "" || secretKey == "" {
		log.Fatal("Missing S3 configuration in .env file")
	}

	origins := []string{"http://localhost:5173", "http://localhost:8080"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = origins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" && o != "*" {
				origins = append(origins, o)
			}
		}
	}

	fmt.Printf("Setting up CORS for object-lake bucket: %s\n", bucket)

	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if service == s3.ServiceID {
			return aws.Endpoint{
				URL:               endpoint,
				SigningRegion:     region,
				HostnameImmutable: true,
			}, nil
		}
		return aws.Endpoint{}, fmt.Errorf("unknown endpoint requested")
	})

	cfg := aws.Config{
		Region:                      region,
		Credentials:                 credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		EndpointResolverWithOptions: customResolver,
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	corsConfig := &types.CORSConfiguration{
		CORSRules: []types.CORSRule{
			{
				AllowedOrigins: origins,
				AllowedMethods: []string{"GET", "HEAD"},
				AllowedHeaders: []string{"*"},
				MaxAgeSeconds:  aws.Int32(3000),
			},
		},
	}

	ctx := context.Background()
	_, err := client.PutBucketCors(ctx, &s3.PutBucketCorsInput{
		Bucket:            aws.String(bucket),
		CORSConfiguration: corsConfig,
	})
	if err != nil {
		log.Fatalf("Failed to set CORS configuration: %v", err)
	}

	fmt.Println("CORS configuration applied")
	fmt.Println("\nAllowed origins:")
	for _, origin := range corsConfig.CORSRules[0].AllowedOrigins {
		fmt.Printf("  - %s\n", origin)
	}
}

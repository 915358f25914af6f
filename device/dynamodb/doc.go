// Package dynamodb provides a device.Device that stores fixed-size pages as
// DynamoDB items.
//
// Table schema:
//   - Partition key: device (string) - the device name
//   - Sort key: page (number) - page index, addr / PageSize
//   - Attribute: data (binary) - exactly PageSize bytes
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name devbitmap-pages \
//	  --attribute-definitions AttributeName=device,AttributeType=S AttributeName=page,AttributeType=N \
//	  --key-schema AttributeName=device,KeyType=HASH AttributeName=page,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
//
// Pages that were never written read as zeros, so writes past the end leave
// a zero gap without storing it.
package dynamodb

package db

import (
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/model"
	"github.com/pkg/errors"
)

// ChordItem is how a chord is stored in the DynamoDB table. Frets are
// listed string 0 first.
type ChordItem struct {
	PK      string `dynamodbav:"PK"`
	Name    string `dynamodbav:"Name"`
	Harmony string `dynamodbav:"Harmony,omitempty"`
	Order   int    `dynamodbav:"Order"`
	Frets   []int  `dynamodbav:"Frets"`
}

type Client struct {
	api   dynamodbiface.DynamoDBAPI
	table string
}

func NewClient(api dynamodbiface.DynamoDBAPI, table string) *Client {
	return &Client{api: api, table: table}
}

// Connect opens a client against the configured endpoint, by default a
// local DynamoDB.
func Connect(table string) (*Client, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetAWSRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a DynamoDB session")
	}
	return NewClient(dynamodb.New(sess), table), nil
}

// GetChords scans the whole table and returns the chords in their stored order.
func (c *Client) GetChords() ([]model.Chord, error) {
	var items []ChordItem
	var decodeErr error
	input := &dynamodb.ScanInput{TableName: aws.String(c.table)}
	err := c.api.ScanPages(input, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		var pageItems []ChordItem
		if decodeErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &pageItems); decodeErr != nil {
			return false
		}
		items = append(items, pageItems...)
		return true
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not scan %s", c.table)
	}
	if decodeErr != nil {
		return nil, errors.Wrapf(decodeErr, "could not decode items from %s", c.table)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})

	res := make([]model.Chord, 0, len(items))
	for _, item := range items {
		res = append(res, item.Chord())
	}
	return res, nil
}

// PutChords writes chords, numbering them in the given order.
func (c *Client) PutChords(chords []model.Chord) error {
	for i, ch := range chords {
		av, err := dynamodbattribute.MarshalMap(NewChordItem(ch, i))
		if err != nil {
			return errors.Wrapf(err, "could not marshal chord %s", ch.ID)
		}
		_, err = c.api.PutItem(&dynamodb.PutItemInput{
			TableName: aws.String(c.table),
			Item:      av,
		})
		if err != nil {
			return errors.Wrapf(err, "could not put chord %s", ch.ID)
		}
	}
	return nil
}

func NewChordItem(c model.Chord, order int) ChordItem {
	item := ChordItem{PK: c.ID, Name: c.Name, Harmony: c.Harmony, Order: order}
	item.Frets = make([]int, len(c.Positions))
	for i := range item.Frets {
		item.Frets[i] = constants.MutedFret
	}
	for _, p := range c.Positions {
		if p.String >= 0 && p.String < len(item.Frets) {
			item.Frets[p.String] = p.Fret
		}
	}
	return item
}

func (item ChordItem) Chord() model.Chord {
	c := model.Chord{ID: item.PK, Name: item.Name, Harmony: item.Harmony}
	for s, f := range item.Frets {
		c.Positions = append(c.Positions, model.StringPosition{String: s, Fret: f})
	}
	return c
}

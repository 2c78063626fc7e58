// SPDX-License-Identifier: Apache-2.0

// Package testutil holds the MOS message fixtures shared across test
// packages. All fixtures describe the same running order RO1 so they can be
// combined into collections.
package testutil

// RoCreate opens RO1 with three stories. STORY1 carries three items, a
// production note on ITEM1 and body text; every story carries timing
// metadata giving it a 30 second duration.
const RoCreate = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1001</messageID>
  <roCreate>
    <roID>RO1</roID>
    <roSlug>TEST RO</roSlug>
    <roEdStart>2020-01-01T12:30:00</roEdStart>
    <story>
      <storyID>STORY1</storyID>
      <storySlug>STORY ONE</storySlug>
      <item>
        <itemID>ITEM1</itemID>
        <itemSlug>ITEM ONE</itemSlug>
        <objID>OBJ1</objID>
        <mosID>MOS1</mosID>
        <mosExternalMetadata>
          <mosScope>PLAYLIST</mosScope>
          <mosPayload>
            <studioCommand type="note">
              <text>camera 2 ready</text>
            </studioCommand>
          </mosPayload>
        </mosExternalMetadata>
      </item>
      <item>
        <itemID>ITEM2</itemID>
        <itemSlug>ITEM TWO</itemSlug>
        <objID>OBJ2</objID>
        <mosID>MOS1</mosID>
      </item>
      <item>
        <itemID>ITEM3</itemID>
        <itemSlug>ITEM THREE</itemSlug>
        <objID>OBJ3</objID>
        <mosID>MOS1</mosID>
      </item>
      <mosExternalMetadata>
        <mosScope>STORY</mosScope>
        <mosPayload>
          <TextTime>10</TextTime>
          <MediaTime>20</MediaTime>
        </mosPayload>
      </mosExternalMetadata>
    </story>
    <story>
      <storyID>STORY2</storyID>
      <storySlug>STORY TWO</storySlug>
      <mosExternalMetadata>
        <mosScope>STORY</mosScope>
        <mosPayload>
          <TextTime>10</TextTime>
          <MediaTime>20</MediaTime>
        </mosPayload>
      </mosExternalMetadata>
    </story>
    <story>
      <storyID>STORY3</storyID>
      <storySlug>STORY THREE</storySlug>
      <mosExternalMetadata>
        <mosScope>STORY</mosScope>
        <mosPayload>
          <TextTime>10</TextTime>
          <MediaTime>20</MediaTime>
        </mosPayload>
      </mosExternalMetadata>
    </story>
  </roCreate>
</mos>`

// RoStorySend carries the full body of STORY1 in the storySend shape, with
// script paragraphs and one storyItem.
const RoStorySend = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1005</messageID>
  <roStorySend>
    <roID>RO1</roID>
    <storyID>STORY1</storyID>
    <storySlug>STORY ONE</storySlug>
    <storyBody>
      <p>Good evening.</p>
      <p>(sound up)</p>
      <p>Our top story tonight.</p>
      <storyItem>
        <itemID>ITEM1</itemID>
        <itemSlug>ITEM ONE</itemSlug>
        <objID>OBJ1</objID>
        <mosID>MOS1</mosID>
      </storyItem>
    </storyBody>
  </roStorySend>
</mos>`

// RoStorySendUnknown targets a story RO1 has never seen.
const RoStorySendUnknown = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1006</messageID>
  <roStorySend>
    <roID>RO1</roID>
    <storyID>STORYX</storyID>
    <storySlug>STORY X</storySlug>
    <storyBody>
      <p>Unseen.</p>
    </storyBody>
  </roStorySend>
</mos>`

// RoStoryAppend adds STORY4 at the end of the running order.
const RoStoryAppend = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1010</messageID>
  <roStoryAppend>
    <roID>RO1</roID>
    <story>
      <storyID>STORY4</storyID>
      <storySlug>STORY FOUR</storySlug>
    </story>
  </roStoryAppend>
</mos>`

// RoStoryDelete removes STORY4.
const RoStoryDelete = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1015</messageID>
  <roStoryDelete>
    <roID>RO1</roID>
    <storyID>STORY4</storyID>
  </roStoryDelete>
</mos>`

// RoStoryInsert places STORYNEW before STORY2.
const RoStoryInsert = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1020</messageID>
  <roStoryInsert>
    <roID>RO1</roID>
    <storyID>STORY2</storyID>
    <story>
      <storyID>STORYNEW</storyID>
      <storySlug>STORY NEW</storySlug>
    </story>
  </roStoryInsert>
</mos>`

// RoStoryMove lifts STORY3 out and reinserts it at STORY1's position,
// yielding the order STORY3, STORY1, STORY2.
const RoStoryMove = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1025</messageID>
  <roStoryMove>
    <roID>RO1</roID>
    <storyID>STORY3</storyID>
    <storyID>STORY1</storyID>
  </roStoryMove>
</mos>`

// RoStoryReplace swaps in a new rendition of STORY1.
const RoStoryReplace = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1030</messageID>
  <roStoryReplace>
    <roID>RO1</roID>
    <storyID>STORY1</storyID>
    <story>
      <storyID>STORY1</storyID>
      <storySlug>STORY ONE UPDATED</storySlug>
      <item>
        <itemID>ITEM1</itemID>
        <itemSlug>ITEM ONE UPDATED</itemSlug>
        <objID>OBJ1</objID>
        <mosID>MOS1</mosID>
      </item>
    </story>
  </roStoryReplace>
</mos>`

// RoItemDelete removes ITEM1 and ITEM2 from STORY1, leaving ITEM3.
const RoItemDelete = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1035</messageID>
  <roItemDelete>
    <roID>RO1</roID>
    <storyID>STORY1</storyID>
    <itemID>ITEM1</itemID>
    <itemID>ITEM2</itemID>
  </roItemDelete>
</mos>`

// RoItemInsert places ITEM4 before ITEM2 in STORY1.
const RoItemInsert = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1040</messageID>
  <roItemInsert>
    <roID>RO1</roID>
    <storyID>STORY1</storyID>
    <itemID>ITEM2</itemID>
    <item>
      <itemID>ITEM4</itemID>
      <itemSlug>ITEM FOUR</itemSlug>
      <objID>OBJ4</objID>
      <mosID>MOS1</mosID>
    </item>
  </roItemInsert>
</mos>`

// RoItemInsertAppend carries an empty target item ID, appending ITEM5.
const RoItemInsertAppend = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1041</messageID>
  <roItemInsert>
    <roID>RO1</roID>
    <storyID>STORY1</storyID>
    <itemID></itemID>
    <item>
      <itemID>ITEM5</itemID>
      <itemSlug>ITEM FIVE</itemSlug>
      <objID>OBJ5</objID>
      <mosID>MOS1</mosID>
    </item>
  </roItemInsert>
</mos>`

// RoItemMoveMultiple moves ITEM3 to ITEM1's position in STORY1. The last
// item ID names the target.
const RoItemMoveMultiple = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1045</messageID>
  <roItemMoveMultiple>
    <roID>RO1</roID>
    <storyID>STORY1</storyID>
    <itemID>ITEM3</itemID>
    <itemID>ITEM1</itemID>
  </roItemMoveMultiple>
</mos>`

// RoItemReplace swaps in a new rendition of ITEM1 in STORY1.
const RoItemReplace = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1050</messageID>
  <roItemReplace>
    <roID>RO1</roID>
    <storyID>STORY1</storyID>
    <itemID>ITEM1</itemID>
    <item>
      <itemID>ITEM1</itemID>
      <itemSlug>ITEM ONE REPLACED</itemSlug>
      <objID>OBJ1B</objID>
      <mosID>MOS1</mosID>
    </item>
  </roItemReplace>
</mos>`

// RoMetadataReplace renames the running order.
const RoMetadataReplace = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1055</messageID>
  <roMetadataReplace>
    <roID>RO1</roID>
    <roSlug>TEST RO RENAMED</roSlug>
  </roMetadataReplace>
</mos>`

// RoReadyToAir marks the running order ready without altering it.
const RoReadyToAir = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1060</messageID>
  <roReadyToAir>
    <roID>RO1</roID>
    <roAir>READY</roAir>
  </roReadyToAir>
</mos>`

// RoReplace discards RO1's content for a two story rundown.
const RoReplace = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1065</messageID>
  <roReplace>
    <roID>RO1</roID>
    <roSlug>TEST RO REPLACED</roSlug>
    <story>
      <storyID>STORYA</storyID>
      <storySlug>STORY A</storySlug>
    </story>
    <story>
      <storyID>STORYB</storyID>
      <storySlug>STORY B</storySlug>
    </story>
  </roReplace>
</mos>`

// RoCtrl delivers status metadata for STORY1. It remains applicable after
// the running order has closed.
const RoCtrl = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1070</messageID>
  <roCtrl>
    <roID>RO1</roID>
    <storyID>STORY1</storyID>
    <mosExternalMetadata>
      <mosScope>STORY</mosScope>
      <mosPayload>
        <StoryStarted>2020-01-01T12:30:05</StoryStarted>
      </mosPayload>
    </mosExternalMetadata>
  </roCtrl>
</mos>`

// EAStoryReplace replaces STORY1 through roElementAction.
const EAStoryReplace = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>2001</messageID>
  <roElementAction operation="REPLACE">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY1</storyID>
    </element_target>
    <element_source>
      <story>
        <storyID>STORY1</storyID>
        <storySlug>STORY ONE EA</storySlug>
      </story>
    </element_source>
  </roElementAction>
</mos>`

// EAItemReplace replaces ITEM1 in STORY1 through roElementAction.
const EAItemReplace = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>2005</messageID>
  <roElementAction operation="REPLACE">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY1</storyID>
      <itemID>ITEM1</itemID>
    </element_target>
    <element_source>
      <item>
        <itemID>ITEM1</itemID>
        <itemSlug>ITEM ONE EA</itemSlug>
        <objID>OBJ1EA</objID>
        <mosID>MOS1</mosID>
      </item>
    </element_source>
  </roElementAction>
</mos>`

// EAStoryDelete removes STORY3 through roElementAction.
const EAStoryDelete = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>2010</messageID>
  <roElementAction operation="DELETE">
    <roID>RO1</roID>
    <element_source>
      <storyID>STORY3</storyID>
    </element_source>
  </roElementAction>
</mos>`

// EAItemDelete removes ITEM2 from STORY1 through roElementAction.
const EAItemDelete = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>2015</messageID>
  <roElementAction operation="DELETE">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY1</storyID>
    </element_target>
    <element_source>
      <itemID>ITEM2</itemID>
    </element_source>
  </roElementAction>
</mos>`

// EAStoryInsert places STORYEA before STORY2 through roElementAction.
const EAStoryInsert = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>2020</messageID>
  <roElementAction operation="INSERT">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY2</storyID>
    </element_target>
    <element_source>
      <story>
        <storyID>STORYEA</storyID>
        <storySlug>STORY EA</storySlug>
      </story>
    </element_source>
  </roElementAction>
</mos>`

// EAItemInsert places ITEMEA before ITEM2 in STORY1 through roElementAction.
const EAItemInsert = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>2025</messageID>
  <roElementAction operation="INSERT">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY1</storyID>
      <itemID>ITEM2</itemID>
    </element_target>
    <element_source>
      <item>
        <itemID>ITEMEA</itemID>
        <itemSlug>ITEM EA</itemSlug>
        <objID>OBJEA</objID>
        <mosID>MOS1</mosID>
      </item>
    </element_source>
  </roElementAction>
</mos>`

// EAStorySwap exchanges the positions of STORY1 and STORY2.
const EAStorySwap = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>2030</messageID>
  <roElementAction operation="SWAP">
    <roID>RO1</roID>
    <element_source>
      <storyID>STORY1</storyID>
      <storyID>STORY2</storyID>
    </element_source>
  </roElementAction>
</mos>`

// EAItemSwap exchanges the positions of ITEM1 and ITEM3 in STORY1.
const EAItemSwap = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>2035</messageID>
  <roElementAction operation="SWAP">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY1</storyID>
    </element_target>
    <element_source>
      <itemID>ITEM1</itemID>
      <itemID>ITEM3</itemID>
    </element_source>
  </roElementAction>
</mos>`

// EAStoryMove reinserts STORY3 before STORY1.
const EAStoryMove = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>2040</messageID>
  <roElementAction operation="MOVE">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY1</storyID>
    </element_target>
    <element_source>
      <storyID>STORY3</storyID>
    </element_source>
  </roElementAction>
</mos>`

// EAItemMove reinserts ITEM3 before ITEM1 in STORY1.
const EAItemMove = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>2045</messageID>
  <roElementAction operation="MOVE">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY1</storyID>
      <itemID>ITEM1</itemID>
    </element_target>
    <element_source>
      <itemID>ITEM3</itemID>
    </element_source>
  </roElementAction>
</mos>`

// RoDelete closes RO1.
const RoDelete = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>9999</messageID>
  <roDelete>
    <roID>RO1</roID>
  </roDelete>
</mos>`

// RoAck is an acknowledgement, a type the merge engine ignores.
const RoAck = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>1002</messageID>
  <roAck>
    <roID>RO1</roID>
  </roAck>
</mos>`

// RoCreateSecond opens a different running order, RO2.
const RoCreateSecond = `<mos>
  <mosID>MOS1</mosID>
  <ncsID>NCS1</ncsID>
  <messageID>3001</messageID>
  <roCreate>
    <roID>RO2</roID>
    <roSlug>SECOND RO</roSlug>
  </roCreate>
</mos>`
